package badrecord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/record/badrecord"
)

func TestNew_FailsWithConfigurationError(t *testing.T) {
	r, err := badrecord.New()
	require.Nil(t, r)
	require.ErrorIs(t, err, recmodel.ErrConfiguration)

	rec, err := badrecord.Factory()
	require.Nil(t, rec)
	require.Error(t, err)
}
