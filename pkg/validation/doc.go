/*
Package validation checks raw calculator input before any number is derived.

Checks run in a fixed order and stop at the first failure, which is reported
as a *domain.ValidationError carrying a message fit for display:

 1. year, month and day are all present and numeric
 2. they form a real calendar date
 3. a name is present
 4. the name has 2 to 50 characters
 5. the name uses only A-Z, a-z and spaces
 6. the name has no run of two or more spaces
 7. the name does not start or end with a space
 8. the date is not after today
 9. the date is at most 150 years back

The name rules are expressed as go-playground/validator tags, including the
custom tags alphaspace, nospacerun and trimmed registered by New.
*/
package validation
