package link

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupTargets_CollapsesDuplicates(t *testing.T) {
	g := Group{From: "a", To: []RecordID{"b", "c", "b", "d", "c"}, ID: "g"}
	assert.Equal(t, []RecordID{"b", "c", "d"}, g.Targets())
	assert.Equal(t, KindGroup, g.Kind())
}

func TestSingle_ImplementsLink(t *testing.T) {
	var l Link = Single{From: "a", To: "b", ID: "s"}
	assert.Equal(t, Identity("s"), l.Identity())
	assert.Equal(t, RecordID("a"), l.Source())
	assert.Equal(t, []RecordID{"b"}, l.Targets())
	assert.Equal(t, "single", l.Kind().String())
}

func TestNewIdentity_IsUUID(t *testing.T) {
	id := NewIdentity()
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
	assert.NotEqual(t, id, NewIdentity())
}

func TestBatch_EdgeCount(t *testing.T) {
	b := &Batch{
		Records: []RecordID{"a", "b", "c"},
		Singles: []Single{{From: "a", To: "b", ID: "1"}, {From: "a", To: "b", ID: "2"}},
		Groups:  []Group{{From: "c", To: []RecordID{"a", "b", "a"}, ID: "3"}},
	}
	assert.Equal(t, 4, b.EdgeCount())
	assert.Len(t, b.Links(), 3)
}

func TestBatch_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		batch   Batch
		wantErr error
		msg     string
	}{
		{
			name:  "empty batch is valid",
			batch: Batch{},
		},
		{
			name: "well formed batch",
			batch: Batch{
				Records: []RecordID{"a", "b"},
				Singles: []Single{{From: "a", To: "b", ID: "1"}},
				Groups:  []Group{{From: "b", To: []RecordID{"a"}, ID: "2"}},
			},
		},
		{
			name:    "empty record id",
			batch:   Batch{Records: []RecordID{"a", ""}},
			wantErr: ErrEmptyRecord,
		},
		{
			name:    "duplicate record",
			batch:   Batch{Records: []RecordID{"a", "a"}},
			wantErr: ErrDuplicateRecord,
			msg:     `"a"`,
		},
		{
			name: "dangling target",
			batch: Batch{
				Records: []RecordID{"a"},
				Singles: []Single{{From: "a", To: "ghost", ID: "1"}},
			},
			wantErr: ErrDanglingReference,
			msg:     `"ghost"`,
		},
		{
			name: "dangling group target",
			batch: Batch{
				Records: []RecordID{"a", "b"},
				Groups:  []Group{{From: "a", To: []RecordID{"b", "ghost"}, ID: "1"}},
			},
			wantErr: ErrDanglingReference,
			msg:     `"ghost"`,
		},
		{
			name: "dangling source",
			batch: Batch{
				Records: []RecordID{"a"},
				Singles: []Single{{From: "ghost", To: "a", ID: "1"}},
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "duplicate identity across kinds",
			batch: Batch{
				Records: []RecordID{"a", "b"},
				Singles: []Single{{From: "a", To: "b", ID: "x"}},
				Groups:  []Group{{From: "b", To: []RecordID{"a"}, ID: "x"}},
			},
			wantErr: ErrDuplicateIdentity,
		},
		{
			name: "empty identity",
			batch: Batch{
				Records: []RecordID{"a", "b"},
				Singles: []Single{{From: "a", To: "b"}},
			},
			wantErr: ErrEmptyIdentity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.batch.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, ErrPrecondition))
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}
}
