package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRfqNumber_Format(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	at := time.Date(2025, time.March, 4, 9, 0, 0, 0, wib)

	assert.Equal(t, "RFQ-UTE-VM/0403/17/G", RfqNumber(CategoryVendor, TypeGeneral, at, 17))
	assert.Equal(t, "RFQ-UTE-SD/0403/5/I", RfqNumber(CategorySubcontractor, TypeInvitation, at, 5))
}

func TestRfqNumber_UsesLocationOfClock(t *testing.T) {
	// 2025-03-04 20:00 UTC is already the 5th in WIB.
	utc := time.Date(2025, time.March, 4, 20, 0, 0, 0, time.UTC)
	wib := utc.In(time.FixedZone("WIB", 7*60*60))

	assert.Contains(t, RfqNumber(CategoryVendor, TypeGeneral, wib, 1), "/0503/")
}

func TestFlag_ScanAndValue(t *testing.T) {
	cases := []struct {
		src  any
		want Flag
	}{
		{nil, FlagOff},
		{int64(0), FlagOff},
		{int64(1), FlagOn},
		{"1", FlagOn},
		{[]byte("0"), FlagOff},
		{true, FlagOn},
	}
	for _, tc := range cases {
		var f Flag
		require.NoError(t, f.Scan(tc.src))
		assert.Equal(t, tc.want, f, "src=%v", tc.src)
	}

	v, err := FlagOn.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	var f Flag
	assert.Error(t, f.Scan("yes please"))
}

func TestParseFlag_Default(t *testing.T) {
	assert.Equal(t, FlagOn, ParseFlag("", FlagOn))
	assert.Equal(t, FlagOff, ParseFlag("0", FlagOn))
	assert.Equal(t, FlagOn, ParseFlag("true", FlagOff))
	assert.Equal(t, FlagOff, ParseFlag("garbage", FlagOff))
}

func TestApprovalStatus_LegacyValuesArePending(t *testing.T) {
	for _, src := range []any{nil, "", "0", []byte("0"), "pending"} {
		var s ApprovalStatus
		require.NoError(t, s.Scan(src))
		assert.Equal(t, ApprovalPending, s, "src=%v", src)
	}

	var s ApprovalStatus
	require.NoError(t, s.Scan("Approved"))
	assert.Equal(t, ApprovalApproved, s)
	assert.True(t, s.Terminal())

	assert.Error(t, s.Scan("maybe"))
}

func TestApprovalStatus_PendingStoredAsNull(t *testing.T) {
	v, err := ApprovalPending.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ApprovalRejected.Value()
	require.NoError(t, err)
	assert.Equal(t, "Rejected", v)
}

func TestParseRfqCategoryAndType_CaseInsensitive(t *testing.T) {
	c, err := ParseRfqCategory("Vendor")
	require.NoError(t, err)
	assert.Equal(t, "VM", c.Code())

	typ, err := ParseRfqType("General")
	require.NoError(t, err)
	assert.Equal(t, TypeGeneral, typ)

	_, err = ParseRfqType("open")
	assert.Error(t, err)
	_, err = ParseRfqCategory("")
	assert.Error(t, err)
}

func TestParseSourceType_DefaultsToVendor(t *testing.T) {
	assert.Equal(t, SourceVendor, ParseSourceType(""))
	assert.Equal(t, SourceSubcontractor, ParseSourceType("Subcontractor"))
	assert.Equal(t, SourceVendor, ParseSourceType("other"))
}
