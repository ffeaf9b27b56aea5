package service

import (
	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"
)

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:         u.UserID,
		Username:       u.Username,
		EmailSF:        u.EmailSF,
		Role:           u.Role,
		PersonalNumber: u.PersonalNumber,
		Dept:           u.Dept,
		Department:     u.Department,
		Division:       u.Division,
		CreatedAt:      u.CreatedAt,
		IsDeleted:      bool(u.IsDeleted),
	}
}

func toPlantResponse(p *model.Plant) dto.PlantResponse {
	return dto.PlantResponse{
		PlantID:   p.PlantID,
		Plant:     p.Plant,
		Postcode:  p.Postcode,
		City:      p.City,
		Name:      p.Name,
		UserID:    p.UserID,
		IsDeleted: bool(p.IsDeleted),
	}
}

func toMaterialGroupResponse(g *model.MaterialGroup) dto.MaterialGroupResponse {
	return dto.MaterialGroupResponse{
		MaterialGroupID: g.MaterialGroupID,
		MaterialType:    g.MaterialType,
		MaterialGroup:   g.Group,
		Description:     g.Description,
		UserID:          g.UserID,
		IsDeleted:       bool(g.IsDeleted),
	}
}

func toMaterialResponse(m *model.Material) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		MaterialID:          m.MaterialID,
		MaterialGroupID:     m.MaterialGroupID,
		MaterialNumber:      m.MaterialNumber,
		MaterialDescription: m.MaterialDescription,
		BaseUnit:            m.BaseUnit,
		PlantID:             m.PlantID,
		IsDeleted:           bool(m.IsDeleted),
	}
	if m.MaterialGroup != nil {
		g := toMaterialGroupResponse(m.MaterialGroup)
		resp.MaterialGroup = &g
	}
	if m.Plant != nil {
		p := toPlantResponse(m.Plant)
		resp.Plant = &p
	}
	return resp
}

// toMaterialRow flattens a material for list views.
func toMaterialRow(m *model.Material) dto.MaterialRow {
	row := dto.MaterialRow{
		MaterialID:               m.MaterialID,
		MaterialNumber:           m.MaterialNumber,
		MaterialDescription:      m.MaterialDescription,
		BaseUnit:                 m.BaseUnit,
		MaterialGroup:            "-",
		MaterialGroupDescription: "-",
		MaterialType:             "-",
		Plant:                    "-",
	}
	if g := m.MaterialGroup; g != nil {
		row.MaterialGroup = g.Group
		row.MaterialGroupDescription = deref(g.Description, "-")
		row.MaterialType = g.MaterialType
	}
	if p := m.Plant; p != nil {
		row.Plant = deref(p.Name, p.Plant)
	}
	return row
}

func toVendorResponse(v *model.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		VendorID:       v.VendorID,
		Name:           v.Name,
		Email:          v.Email,
		CountryCode:    v.CountryCode,
		PostalCode:     v.PostalCode,
		Address:        v.Address,
		VendorCode:     v.VendorCode,
		PhoneNo:        v.PhoneNo,
		VendorType:     v.VendorType,
		EmailPO:        v.EmailPO,
		CreatedAt:      v.CreatedAt,
		CreatedBy:      v.CreatedBy,
		UpdatedAt:      v.UpdatedAt,
		LastModifiedBy: v.LastModifiedBy,
		IsDeleted:      bool(v.IsDeleted),
	}
}

func toKbliResponse(k *model.Kbli) dto.KbliResponse {
	return dto.KbliResponse{
		ID:          k.ID,
		Year:        k.Year,
		Code:        k.Code,
		Title:       k.Title,
		Description: k.Description,
		Enable:      bool(k.Enable),
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}

func toDetailResponse(d *model.RfqDetail) dto.RfqDetailResponse {
	return dto.RfqDetailResponse{
		ID:             d.ID,
		RfqID:          d.RfqID,
		PRNumber:       d.PRNumber,
		PRItem:         d.PRItem,
		PartNumber:     d.PartNumber,
		Description:    d.Description,
		PRQty:          d.PRQty,
		PRUom:          d.PRUom,
		MatGroup:       d.MatGroup,
		Status:         int(d.Status),
		SourceType:     string(d.SourceType),
		CreatedAt:      d.CreatedAt,
		LastModifiedAt: d.LastModifiedAt,
		LastModifiedBy: d.LastModifiedBy,
		IsDeleted:      bool(d.IsDeleted),
	}
}

func toDetailResponses(details []model.RfqDetail) []dto.RfqDetailResponse {
	out := make([]dto.RfqDetailResponse, len(details))
	for i := range details {
		out[i] = toDetailResponse(&details[i])
	}
	return out
}

func toAttachmentResponse(a *model.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:        a.ID,
		RfqID:     a.RfqID,
		Filename:  a.Filename,
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		UpdatedAt: a.UpdatedAt,
		UpdatedBy: a.UpdatedBy,
		IsDeleted: bool(a.IsDeleted),
	}
}

func toFileResponses(files []model.RfqFile) []dto.AttachmentResponse {
	out := make([]dto.AttachmentResponse, len(files))
	for i := range files {
		out[i] = toAttachmentResponse(&files[i].Attachment)
	}
	return out
}

func toPictureResponses(pictures []model.RfqPicture) []dto.AttachmentResponse {
	out := make([]dto.AttachmentResponse, len(pictures))
	for i := range pictures {
		out[i] = toAttachmentResponse(&pictures[i].Attachment)
	}
	return out
}

func toRfqVendorResponse(v *model.RfqVendor) dto.RfqVendorResponse {
	resp := dto.RfqVendorResponse{
		ID:             v.ID,
		RfqID:          v.RfqID,
		VendorID:       v.VendorID,
		Status:         int(v.Status),
		CreatedAt:      v.CreatedAt,
		LastModifiedAt: v.LastModifiedAt,
		LastModifiedBy: v.LastModifiedBy,
		IsDeleted:      bool(v.IsDeleted),
	}
	if v.Vendor != nil {
		vr := toVendorResponse(v.Vendor)
		resp.Vendor = &vr
	}
	return resp
}

func toRfqVendorResponses(vendors []model.RfqVendor) []dto.RfqVendorResponse {
	out := make([]dto.RfqVendorResponse, len(vendors))
	for i := range vendors {
		out[i] = toRfqVendorResponse(&vendors[i])
	}
	return out
}

// toRfqResponse maps the RFQ row and whichever relations were loaded.
func toRfqResponse(r *model.Rfq) dto.RfqResponse {
	resp := dto.RfqResponse{
		RfqID:         r.RfqID,
		UserID:        r.UserID,
		Category:      string(r.Category),
		Type:          string(r.Type),
		Number:        r.Number,
		Title:         r.Title,
		Specification: r.Specification,
		DueDate:       r.DueDate,
		IsActive:      bool(r.IsActive),
		IsRelease:     bool(r.IsRelease),
		ReleaseBy:     r.ReleaseBy,
		ReleaseByName: r.ReleaseByName,
		ReleaseAt:     r.ReleaseAt,
		IsLocked:      bool(r.IsLocked),
		IsDeleted:     bool(r.IsDeleted),
		Status:        r.Status,
		IsApproved:    string(r.IsApproved),
		ApprovedAt:    r.ApprovedAt,
		ApprovedBy:    r.ApprovedBy,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedBy:     r.UpdatedBy,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.User != nil {
		u := toUserResponse(r.User)
		resp.User = &u
	}
	if len(r.Details) > 0 {
		resp.Details = toDetailResponses(r.Details)
	}
	if len(r.Files) > 0 {
		resp.Files = toFileResponses(r.Files)
	}
	if len(r.Pictures) > 0 {
		resp.Pictures = toPictureResponses(r.Pictures)
	}
	if len(r.Vendors) > 0 {
		resp.Vendors = toRfqVendorResponses(r.Vendors)
	}
	return resp
}

func toQuotationResponse(q *model.VendorQuotation) dto.QuotationResponse {
	return dto.QuotationResponse{
		ID:            q.ID,
		RfqDetailID:   q.RfqDetailID,
		VendorID:      q.VendorID,
		Price:         q.Price,
		MOQ:           q.MOQ,
		ValidUntil:    q.ValidUntil,
		IsSubmitted:   bool(q.IsSubmitted),
		HasAttachment: len(q.Attachment) > 0,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
