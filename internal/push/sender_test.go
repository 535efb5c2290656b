package push

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSenderFailsFastOnMissingConfig(t *testing.T) {
	_, err := NewSender("", "pub", "priv", 0, 0)
	assert.Error(t, err)

	_, err = NewSender("mailto:admin@ramadanku.app", "pub", "", 0, 0)
	assert.Error(t, err)

	s, err := NewSender("mailto:admin@ramadanku.app", "pub", "priv", 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestClassifyStatus(t *testing.T) {
	assert.NoError(t, classifyStatus(http.StatusCreated))
	assert.NoError(t, classifyStatus(http.StatusOK))

	assert.ErrorIs(t, classifyStatus(http.StatusNotFound), ErrEndpointGone)
	assert.ErrorIs(t, classifyStatus(http.StatusGone), ErrEndpointGone)

	err := classifyStatus(http.StatusTooManyRequests)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndpointGone)

	err = classifyStatus(http.StatusInternalServerError)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEndpointGone)
}
