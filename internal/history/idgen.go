package history

import "github.com/google/uuid"

func newEntryID() string {
	return uuid.NewString()
}
