package driver_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/driver"
	"github.com/vlaran/mitonet/simconfig"
)

func baseConfig() *simconfig.Config {
	return &simconfig.Config{
		TimeTotal:     5,
		LogFrequency:  1,
		SaveFrequency: 1,
		MtMassIni:     8,
		SegMassIni:    2,
		Use11Fusion:   true,
		FusionRate11:  1,
	}
}

func TestRunProducesSummaryAndFinalSnapshot(t *testing.T) {
	cfg := baseConfig()

	var out, last bytes.Buffer
	summary, err := driver.Run(context.Background(), cfg, 1, &out, &last)

	require.NoError(t, err)
	require.NotNil(t, summary)
	require.LessOrEqual(t, summary.FinalTime, cfg.TimeTotal)
	require.NotZero(t, last.Len())
}

func TestRunStopsWhenNoReactionIsActive(t *testing.T) {
	cfg := baseConfig()
	cfg.Use11Fusion = false
	cfg.FusionRate11 = 0

	var out, last bytes.Buffer
	summary, err := driver.Run(context.Background(), cfg, 1, &out, &last)

	require.NoError(t, err)
	require.Zero(t, summary.Iterations)
	require.NotZero(t, last.Len())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cfg := baseConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, last bytes.Buffer
	summary, err := driver.Run(ctx, cfg, 1, &out, &last)

	require.NoError(t, err)
	require.Zero(t, summary.Iterations)
	require.NotZero(t, last.Len())
}

func TestRunRejectsInitialMassesThatYieldNoSegments(t *testing.T) {
	cfg := baseConfig()
	cfg.MtMassIni = 1
	cfg.SegMassIni = 4

	var out, last bytes.Buffer
	_, err := driver.Run(context.Background(), cfg, 1, &out, &last)

	require.Error(t, err)
}
