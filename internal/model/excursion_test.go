package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcursionStatusTransition(t *testing.T) {
	tests := []struct {
		name string
		from ExcursionStatus
		to   ExcursionStatus
		ok   bool
	}{
		{name: "draft submits for review", from: StatusDraft, to: StatusPendingReview, ok: true},
		{name: "pending review approved", from: StatusPendingReview, to: StatusApproved, ok: true},
		{name: "approved regresses on edit", from: StatusApproved, to: StatusPendingReview, ok: true},
		{name: "draft cannot skip review", from: StatusDraft, to: StatusApproved, ok: false},
		{name: "approved cannot re-approve", from: StatusApproved, to: StatusApproved, ok: false},
		{name: "pending cannot go back to draft", from: StatusPendingReview, to: StatusDraft, ok: false},
		{name: "self transition illegal", from: StatusPendingReview, to: StatusPendingReview, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to))

			got, err := tt.from.Transition(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, got, "illegal transition leaves status unchanged")
			}
		})
	}
}

func TestAfterEdit(t *testing.T) {
	assert.Equal(t, StatusPendingReview, StatusApproved.AfterEdit(), "edits to approved excursions need re-review")
	assert.Equal(t, StatusPendingReview, StatusPendingReview.AfterEdit())
	assert.Equal(t, StatusDraft, StatusDraft.AfterEdit())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPendingReview.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.False(t, ExcursionStatus("rejected").Valid(), "there is no rejected status")
	assert.False(t, ExcursionStatus("").Valid())
}

func TestBookable(t *testing.T) {
	e := Excursion{Status: StatusApproved}
	assert.True(t, e.Bookable())

	for _, s := range []ExcursionStatus{StatusDraft, StatusPendingReview} {
		e.Status = s
		assert.False(t, e.Bookable(), "status %s must not be bookable", s)
	}
}
