package domain

// ToneMessages maps each Tone to its ordered message list.
type ToneMessages map[Tone][]string

// MessageDatabase is the validated, immutable message catalog.
//
// Once built by the loader every Category × Tone key is present (lists may be
// empty). Nothing mutates a MessageDatabase after construction; a reload
// builds a new value and swaps it in.
type MessageDatabase struct {
	Version    string
	Categories map[Category]ToneMessages
}

// Messages returns the stored list for (c, t) and whether the key exists.
// The returned slice is shared with the database and must not be modified.
func (db *MessageDatabase) Messages(c Category, t Tone) ([]string, bool) {
	if db == nil {
		return nil, false
	}
	tones, ok := db.Categories[c]
	if !ok {
		return nil, false
	}
	msgs, ok := tones[t]
	return msgs, ok
}

// Count sums list lengths over all declared Category × Tone pairs.
func (db *MessageDatabase) Count() int {
	if db == nil {
		return 0
	}
	n := 0
	for _, c := range allCategories {
		for _, t := range allTones {
			n += len(db.Categories[c][t])
		}
	}
	return n
}
