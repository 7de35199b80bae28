package restore

import "time"

// Eligible decides whether a trashed child should be restored alongside its
// parent: the child must be trashed, and it must have been trashed at or
// after the instant the parent was. Ties count as eligible; a child trashed
// at exactly the parent's instant is part of the same cascade.
//
// A nil parent marker means the parent was not actually trashed when the
// cascade ran. Nothing is eligible in that case.
func Eligible(parentDeletedAt, childDeletedAt *time.Time) bool {
	if parentDeletedAt == nil || childDeletedAt == nil {
		return false
	}
	return !childDeletedAt.Before(*parentDeletedAt)
}
