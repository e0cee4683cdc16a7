package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityInfo.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityError.Rank())
	assert.Less(t, SeverityError.Rank(), SeverityCritical.Rank())
	assert.Equal(t, -1, Severity("nonsense").Rank())
}

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityInfo, SeverityCritical))
	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityCritical, SeverityInfo))
	assert.Equal(t, SeverityWarning, MaxSeverity(SeverityWarning, SeverityWarning))
	assert.Equal(t, SeverityError, MaxSeverity(SeverityError, SeverityWarning))

	// Unknown severities never win over known ones.
	assert.Equal(t, SeverityInfo, MaxSeverity(Severity("nonsense"), SeverityInfo))
}
