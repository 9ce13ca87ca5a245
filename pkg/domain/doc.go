/*
Package domain contains the numeric core of the numerology calculator.

It holds the letter table, the digit reducer and the six derivation recipes,
together with the session model that owns the display mode and the latest
result. The package is pure: no I/O, no clocks, no persistence.

# Key Entities

  - LetterTable: Total mapping from A-Z to 1-9 plus the vowel set.
  - Reduce: Digit-sum folding that stops at a single digit or a master number.
  - ResultSet: The six derived numbers of one calculation, always produced together.
  - Session: Explicit owner of the display mode and the cached ResultSet.
*/
package domain
