package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/stranddeduce"
)

func validConfig() *commonConfig {
	return &commonConfig{
		inputs:    stringSlice{"a.bam"},
		reference: "ref.fa",
		stranding: "u",
		binSize:   1000,
		threads:   1,
		mapq:      1,
		inFlags:   0,
		exFlags:   2820,
		phred:     20,
	}
}

func TestCommonConfigValidateAccepts(t *testing.T) {
	assert.NoError(t, validConfig().validate())
}

func TestCommonConfigValidateRejectsMissingInput(t *testing.T) {
	c := validConfig()
	c.inputs = nil
	assert.Error(t, c.validate())
}

func TestCommonConfigValidateRejectsMissingReference(t *testing.T) {
	c := validConfig()
	c.reference = ""
	assert.Error(t, c.validate())
}

func TestCommonConfigValidateRejectsBadStranding(t *testing.T) {
	c := validConfig()
	c.stranding = "backwards"
	assert.Error(t, c.validate())
}

func TestCommonConfigValidateRejectsBinSizeOutOfRange(t *testing.T) {
	c := validConfig()
	c.binSize = 0
	assert.Error(t, c.validate())

	c = validConfig()
	c.binSize = 1_000_001
	assert.Error(t, c.validate())
}

func TestCommonConfigValidateRejectsZeroThreads(t *testing.T) {
	c := validConfig()
	c.threads = 0
	assert.Error(t, c.validate())
}

func TestCommonConfigValidateRejectsFlagMaskOutOfRange(t *testing.T) {
	c := validConfig()
	c.inFlags = 4096
	assert.Error(t, c.validate())

	c = validConfig()
	c.exFlags = -1
	assert.Error(t, c.validate())
}

func TestDeducerForRecognizedDesigns(t *testing.T) {
	d, err := deducerFor("u")
	require.NoError(t, err)
	assert.Nil(t, d, "unstranded libraries have no deducer")

	for _, s := range []string{"s", "f", "s/f", "f/s"} {
		d, err := deducerFor(s)
		require.NoError(t, err, s)
		require.NotNil(t, d, s)
	}
}

func TestDeducerForRejectsUnrecognized(t *testing.T) {
	_, err := deducerFor("backwards")
	assert.Error(t, err)
}

func TestDeducerForMapsToExpectedDesign(t *testing.T) {
	d, err := deducerFor("s")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, stranddeduce.New(stranddeduce.Same), *d)
}
