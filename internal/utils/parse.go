package utils

import (
	"strconv"

	"github.com/Konstantin-Kleinikov/foodgram/domain"
)

// ParseID converts a path or token identifier into a numeric primary key.
func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, domain.ErrParseID
	}
	return uint(id), nil
}
