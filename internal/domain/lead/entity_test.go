//go:build unit

package lead_test

import (
	"testing"

	"charterdesk/internal/domain/lead"
	"charterdesk/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewLeadBuilder().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, lead.StatusNew, actual.Status())
		assert.Equal(t, "Ayşe Yılmaz", actual.CustomerName())
		assert.Equal(t, 4, actual.GuestCount())
	})

	t.Run("blank customer name", func(t *testing.T) {
		b := builder.NewLeadBuilder()
		b.CustomerName = "  "
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, lead.ErrEmptyCustomerName)
	})

	t.Run("blank phone", func(t *testing.T) {
		b := builder.NewLeadBuilder()
		b.CustomerPhone = ""
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, lead.ErrEmptyCustomerPhone)
	})

	t.Run("zero guest count defaults to one", func(t *testing.T) {
		b := builder.NewLeadBuilder()
		b.GuestCount = 0
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, 1, actual.GuestCount())
	})
}

func TestLead_UpdateStatus(t *testing.T) {
	cases := []struct {
		name  string
		from  lead.Status
		to    lead.Status
		errIs error
	}{
		{name: "new to contacted", from: lead.StatusNew, to: lead.StatusContacted},
		{name: "new to confirmed", from: lead.StatusNew, to: lead.StatusConfirmed},
		{name: "new to cancelled", from: lead.StatusNew, to: lead.StatusCancelled},
		{name: "contacted to confirmed", from: lead.StatusContacted, to: lead.StatusConfirmed},
		{name: "confirmed to completed", from: lead.StatusConfirmed, to: lead.StatusCompleted},
		{name: "confirmed to cancelled", from: lead.StatusConfirmed, to: lead.StatusCancelled},
		{name: "same status is a no-op", from: lead.StatusContacted, to: lead.StatusContacted},
		{name: "completed is terminal", from: lead.StatusCompleted, to: lead.StatusContacted, errIs: lead.ErrStatusTransition},
		{name: "cancelled is terminal", from: lead.StatusCancelled, to: lead.StatusConfirmed, errIs: lead.ErrStatusTransition},
		{name: "new cannot jump to completed", from: lead.StatusNew, to: lead.StatusCompleted, errIs: lead.ErrStatusTransition},
		{name: "unknown status", from: lead.StatusNew, to: lead.Status("archived"), errIs: lead.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewLeadBuilder()
			b.Status = tc.from
			l := b.BuildReconstructed()

			err := l.UpdateStatus(tc.to, "note")
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Equal(t, tc.from, l.Status())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.to, l.Status())
				assert.Equal(t, "note", l.AdminNote())
			}
		})
	}
}

func TestStatus(t *testing.T) {
	assert.True(t, lead.StatusNew.IsValid())
	assert.False(t, lead.Status("junk").IsValid())
	assert.True(t, lead.StatusCompleted.IsTerminal())
	assert.False(t, lead.StatusNew.IsTerminal())
}
