package permissions

import (
	"github.com/stretchr/testify/assert"
	"net/http"
	"profile-feed-api/app/server/apperr"
	"testing"
)

func id(v uint) *uint { return &v }

func TestIsOwnerOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		caller *uint
		owner  uint
		want   bool
	}{
		{"anonymous list", ActionList, nil, 1, true},
		{"anonymous retrieve", ActionRetrieve, nil, 1, true},
		{"other retrieve", ActionRetrieve, id(2), 1, true},
		{"owner update", ActionUpdate, id(1), 1, true},
		{"owner partial update", ActionPartialUpdate, id(1), 1, true},
		{"owner destroy", ActionDestroy, id(1), 1, true},
		{"other update", ActionUpdate, id(2), 1, false},
		{"other partial update", ActionPartialUpdate, id(2), 1, false},
		{"other destroy", ActionDestroy, id(2), 1, false},
		{"anonymous destroy", ActionDestroy, nil, 1, false},
		{"zero owner anonymous", ActionUpdate, nil, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOwnerOrReadOnly(tc.action, tc.caller, tc.owner))
		})
	}
}

func TestCheckOwner(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(CheckOwner(ActionRetrieve, nil, 1))
	assert.NoError(CheckOwner(ActionDestroy, id(1), 1))
	assert.ErrorIs(CheckOwner(ActionUpdate, nil, 1), apperr.ErrUnauthenticated)
	assert.ErrorIs(CheckOwner(ActionUpdate, id(2), 1), apperr.ErrForbidden)
}

func TestActionForMethod(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(ActionRetrieve, ActionForMethod(http.MethodGet))
	assert.Equal(ActionRetrieve, ActionForMethod(http.MethodHead))
	assert.Equal(ActionCreate, ActionForMethod(http.MethodPost))
	assert.Equal(ActionUpdate, ActionForMethod(http.MethodPut))
	assert.Equal(ActionPartialUpdate, ActionForMethod(http.MethodPatch))
	assert.Equal(ActionDestroy, ActionForMethod(http.MethodDelete))

	assert.True(ActionList.Safe())
	assert.False(ActionCreate.Safe())
	assert.Equal("partial_update", ActionPartialUpdate.String())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "partial_update", ActionPartialUpdate.String())
	assert.Equal(t, "destroy", ActionDestroy.String())
	assert.Equal(t, "unknown", Action(99).String())
}
