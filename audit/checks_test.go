package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemediation_EveryKindHasText(t *testing.T) {
	kinds := []CheckKind{
		KindMissingBasicInfo, KindHeadingStructure, KindMissingAlt,
		KindLinkHygiene, KindMissingViewport, KindNoHTTPS,
		KindNoStructuredData, KindSlowLoad, KindNo404Page,
		KindDeadLinks, KindPoorReadability,
	}
	for _, k := range kinds {
		assert.NotEmpty(t, k.Remediation(), "kind %d", k)
	}
}

func TestRemediate_JoinsInOrder(t *testing.T) {
	got := remediate([]CheckKind{KindNoHTTPS, KindSlowLoad}, "fallback")

	assert.Equal(t, KindNoHTTPS.Remediation()+" "+KindSlowLoad.Remediation(), got)
}

func TestRemediate_Deduplicates(t *testing.T) {
	got := remediate([]CheckKind{KindMissingAlt, KindMissingAlt}, "fallback")

	assert.Equal(t, KindMissingAlt.Remediation(), got)
}

func TestRemediate_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", remediate(nil, "fallback"))
	assert.Equal(t, "fallback", remediate([]CheckKind{CheckKind(999)}, "fallback"))
}
