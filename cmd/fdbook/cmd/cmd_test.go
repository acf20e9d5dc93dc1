package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmz/fdbook/pkg/fdapi"
	"github.com/tokmz/fdbook/pkg/logger"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, logLevel, apiURL, userID, outputFmt = "", "", "", "", "table"
	})
}

func TestNewApp(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("FD_API_BASE_URL", "http://backend:8084/api")
	t.Setenv("FD_APP_MODE", "production")

	logLevel = "debug"
	userID = "17"

	ctx := context.Background()
	a, err := newApp(ctx)
	require.NoError(t, err)
	defer a.close(ctx)

	assert.Equal(t, "http://backend:8084/api", a.api.Client().BaseURL())
	assert.Equal(t, logger.DebugLevel, a.log.Level())
	assert.False(t, a.cfg.IsDevelopment())
	assert.Equal(t, "17", a.identity.UserID(ctx))
	assert.Equal(t, "fdbook/1.0.0", userAgent(a.cfg))
}

func TestNewAppFlagOverride(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("FD_API_BASE_URL", "http://backend:8084/api")

	apiURL = "http://override:9000/api"

	ctx := context.Background()
	a, err := newApp(ctx)
	require.NoError(t, err)
	defer a.close(ctx)

	assert.Equal(t, "http://override:9000/api", a.api.Client().BaseURL())
	assert.Equal(t, logger.AnonymousUser, a.identity.UserID(ctx))
}

func TestNewAppInvalidConfig(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("FD_APP_MODE", "staging")

	_, err := newApp(context.Background())
	assert.Error(t, err)
}

func TestPrinter(t *testing.T) {
	resetFlags(t)
	list := []fdapi.FixedDeposit{
		{ID: "7", Amount: 1000, Scheme: "Tax Saver", InterestRate: 7.2, TenureMonths: 12, MaturityDate: "2027-01-01", Status: fdapi.StatusActive},
	}

	var buf bytes.Buffer
	require.NoError(t, newPrinter(&buf).PrintDeposits(list))
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "Tax Saver")
	assert.Contains(t, buf.String(), "7.2%")

	buf.Reset()
	require.NoError(t, newPrinter(&buf).PrintDeposits(nil))
	assert.Contains(t, buf.String(), "No fixed deposits found.")

	outputFmt = "json"
	buf.Reset()
	require.NoError(t, newPrinter(&buf).PrintDeposits(list))
	assert.Contains(t, buf.String(), `"fixedDepositId": 7`)

	outputFmt = "yaml"
	buf.Reset()
	require.NoError(t, newPrinter(&buf).PrintPayload(fdapi.Payload(`{"id":"fd-1","amount":1000}`)))
	assert.Contains(t, buf.String(), "id: fd-1")
}

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("FD_APP_VERSION", "2.0.1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "fdbook version 2.0.1")
}
