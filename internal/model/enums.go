package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean stored as a SMALLINT 0/1 column (is_deleted, is_active,
// is_locked, enable, ...). Conversion happens only here, at the storage boundary.
type Flag bool

const (
	FlagOff Flag = false
	FlagOn  Flag = true
)

func (f Flag) Value() (driver.Value, error) {
	if f {
		return int64(1), nil
	}
	return int64(0), nil
}

func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case int32:
		*f = v != 0
	case []byte:
		return f.Scan(string(v))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("model: cannot scan %q into Flag", v)
		}
		*f = n != 0
	default:
		return fmt.Errorf("model: cannot scan %T into Flag", src)
	}
	return nil
}

// ParseFlag reads the loose "0"/"1"/"true" form values sent by the portals.
// Empty input yields def.
func ParseFlag(s string, def Flag) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def
	case "1", "true", "yes":
		return FlagOn
	case "0", "false", "no":
		return FlagOff
	}
	return def
}

// ApprovalStatus is the RFQ approval state. Pending is stored as NULL; legacy
// rows may also carry "" or "0".
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

func (s ApprovalStatus) Value() (driver.Value, error) {
	switch s {
	case ApprovalApproved, ApprovalRejected:
		return string(s), nil
	case ApprovalPending, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("model: invalid approval status %q", string(s))
	}
}

func (s *ApprovalStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = ApprovalPending
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("model: cannot scan %T into ApprovalStatus", src)
	}
	parsed, err := ParseApprovalStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseApprovalStatus normalizes stored and user supplied approval values.
func ParseApprovalStatus(raw string) (ApprovalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "pending":
		return ApprovalPending, nil
	case "approved":
		return ApprovalApproved, nil
	case "rejected":
		return ApprovalRejected, nil
	}
	return "", fmt.Errorf("model: unknown approval status %q", raw)
}

// Terminal reports whether no further transition is expected.
func (s ApprovalStatus) Terminal() bool {
	switch s {
	case ApprovalApproved, ApprovalRejected:
		return true
	case ApprovalPending:
		return false
	}
	return false
}

// RfqCategory distinguishes vendor-material RFQs from subcontracting ones.
type RfqCategory string

const (
	CategoryVendor        RfqCategory = "vendor"
	CategorySubcontractor RfqCategory = "subcontractor"
)

func ParseRfqCategory(raw string) (RfqCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "vendor":
		return CategoryVendor, nil
	case "subcontractor":
		return CategorySubcontractor, nil
	}
	return "", fmt.Errorf("unknown rfq_category %q", raw)
}

// Code is the category segment of the business number.
func (c RfqCategory) Code() string {
	switch c {
	case CategoryVendor:
		return "VM"
	case CategorySubcontractor:
		return "SD"
	}
	return "SD"
}

// RfqType is general (visible to every vendor) or invitation (explicit vendors).
type RfqType string

const (
	TypeGeneral    RfqType = "general"
	TypeInvitation RfqType = "invitation"
)

func ParseRfqType(raw string) (RfqType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "general":
		return TypeGeneral, nil
	case "invitation":
		return TypeInvitation, nil
	}
	return "", fmt.Errorf("unknown rfq_type %q", raw)
}

func (t RfqType) Code() string {
	switch t {
	case TypeGeneral:
		return "G"
	case TypeInvitation:
		return "I"
	}
	return "I"
}

// SourceType tells whether an RFQ line is sourced from a vendor or a subcontractor.
type SourceType string

const (
	SourceVendor        SourceType = "vendor"
	SourceSubcontractor SourceType = "subcontractor"
)

func ParseSourceType(raw string) SourceType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "subcontractor":
		return SourceSubcontractor
	case "vendor", "":
		return SourceVendor
	}
	return SourceVendor
}

// LineStatus is the per-line (and per-invitation) status column.
type LineStatus int

const (
	LineOpen   LineStatus = 0
	LineClosed LineStatus = 1
)
