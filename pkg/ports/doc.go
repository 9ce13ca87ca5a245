/*
Package ports defines the driven ports (interfaces) of the numerology calculator.

These interfaces decouple the calculation core from the surfaces that show its
output and from the backends that keep sessions alive between requests.

# Key Interfaces

  - ErrorSink: shows or clears the single validation message of a form.
  - ResultSink: shows a rendered presenter.View.
  - SessionStore: persists the transient Session (mode and latest result).
  - DistributedLocker: serializes access to one session across replicas.
*/
package ports
