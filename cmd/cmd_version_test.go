package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/core/constants"
	"github.com/gaze-network/public-sale/modules/publicsale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionHandler(t *testing.T) {
	testCases := []struct {
		module   string
		expected string
	}{
		{module: "", expected: constants.Version},
		{module: "publicsale", expected: publicsale.Version},
	}
	for _, tc := range testCases {
		t.Run(tc.module, func(t *testing.T) {
			cmd := NewVersionCommand()
			out := new(bytes.Buffer)
			cmd.SetOut(out)

			require.NoError(t, versionHandler(&versionCmdOptions{Modules: tc.module}, cmd, nil))
			assert.Equal(t, tc.expected, strings.TrimSpace(out.String()))
		})
	}

	err := versionHandler(&versionCmdOptions{Modules: "runes"}, NewVersionCommand(), nil)
	assert.True(t, errors.Is(err, errs.Unsupported))
}
