// Package field is the closed type system every symbol column is built from.
//
// A Value carries exactly one Kind and a nullable payload. There is no implicit
// coercion between kinds: a Number is never read as a String, and a Path is
// never read as a plain String. Narrowing accessors fail with an error that
// matches ErrTypeMismatch.
//
// Path values remember the author-supplied value the first time they are
// rebound, so later binding stages can tell that a path was rewritten without
// losing what the author wrote.
package field
