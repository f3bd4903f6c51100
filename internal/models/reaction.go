package models

// ReactionTypes is the fixed set of reactions a user may attach to a post or
// comment.
var ReactionTypes = []string{"Amused", "Clever", "...Wow"}

// IsValidReactionType reports whether t is one of the allowed reaction types.
func IsValidReactionType(t string) bool {
	for _, rt := range ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// ReactionEntry groups the users who reacted with one type. Across a whole
// reaction collection a user id may appear in at most one entry, and an entry
// with no users is never persisted.
type ReactionEntry struct {
	Type  string `json:"type" bson:"type"`
	Users []uint `json:"users" bson:"users"`
}

// ApplyReaction transitions userID's reaction within entries and returns the
// updated collection, the type the user previously held (empty if none), and
// whether the collection now holds a different reaction for the user than it
// did before the call.
//
// Re-applying the type the user already holds is a toggle-off: the user is
// removed and nothing is re-added. Any other input moves the user to the entry
// for rtype, creating it if needed. Entries whose user set becomes empty are
// dropped.
func ApplyReaction(entries []ReactionEntry, userID uint, rtype string) (updated []ReactionEntry, previous string, changed bool) {
	for i := range entries {
		for j, u := range entries[i].Users {
			if u == userID {
				previous = entries[i].Type
				entries[i].Users = append(entries[i].Users[:j], entries[i].Users[j+1:]...)
				break
			}
		}
	}

	if previous != rtype {
		added := false
		for i := range entries {
			if entries[i].Type == rtype {
				entries[i].Users = append(entries[i].Users, userID)
				added = true
				break
			}
		}
		if !added {
			entries = append(entries, ReactionEntry{Type: rtype, Users: []uint{userID}})
		}
	}

	updated = entries[:0]
	for _, e := range entries {
		if len(e.Users) > 0 {
			updated = append(updated, e)
		}
	}

	return updated, previous, previous != rtype
}

// ReactionTypeOf returns the type userID currently holds in entries, or an
// empty string if the user has no reaction.
func ReactionTypeOf(entries []ReactionEntry, userID uint) string {
	for _, e := range entries {
		for _, u := range e.Users {
			if u == userID {
				return e.Type
			}
		}
	}
	return ""
}
