package repository

import (
	"testing"

	"github.com/embunadw/E-Procurement/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestSortColumn_AllowList(t *testing.T) {
	assert.Equal(t, "rfq_title", rfqList.SortColumn("rfq_title"))
	assert.Equal(t, "rfq_id", rfqList.SortColumn("rfq_title; DROP TABLE trs_rfq"))
	assert.Equal(t, "rfq_id", rfqList.SortColumn(""))
	assert.Equal(t, "username", userList.SortColumn("password"))
	assert.Equal(t, "personal_number", userList.SortColumn("personal_number"))
	assert.Equal(t, "code", kbliList.SortColumn("enable"))
}

func TestOrderBy_UsesResourceTable(t *testing.T) {
	col := materialList.orderBy(dto.ListQuery{Sort: "base_unit", Order: "DESC"})
	assert.Equal(t, "ms_material", col.Column.Table)
	assert.Equal(t, "base_unit", col.Column.Name)
	assert.True(t, col.Desc)

	col = vendorList.orderBy(dto.ListQuery{Sort: "nope", Order: "sideways"})
	assert.Equal(t, "vendor_id", col.Column.Name)
	assert.False(t, col.Desc)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
