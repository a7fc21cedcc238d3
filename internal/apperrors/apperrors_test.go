package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchAlreadyExists(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		msg  string
	}{
		{
			name: "email taken",
			err:  &EmailTakenError{Email: "a@b.c"},
			msg:  "email 'a@b.c' is already registered",
		},
		{
			name: "reviewer already assigned",
			err:  &ReviewerAlreadyAssignedError{ArticleID: "art-1", ReviewerID: "rev-1"},
			msg:  "reviewer 'rev-1' is already assigned to article 'art-1'",
		},
		{
			name: "issue exists",
			err:  &IssueExistsError{Volume: 3, Number: 2},
			msg:  "issue volume 3 number 2 already exists",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tc.err)

			assert.True(t, errors.Is(wrapped, ErrAlreadyExists))
			assert.False(t, errors.Is(wrapped, ErrNotFound))
			assert.Equal(t, tc.msg, tc.err.Error())
		})
	}
}
