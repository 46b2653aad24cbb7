package mysql

import (
	"context"

	"gorm.io/gorm"

	guarantorDomain "gmfn-backend/internal/domain/guarantor"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository {
	return &GuarantorRepository{db: db}
}

func (r *GuarantorRepository) Create(ctx context.Context, g *guarantorDomain.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuarantorRepository) Save(ctx context.Context, g *guarantorDomain.Guarantor) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GuarantorRepository) GetByID(ctx context.Context, id uint64) (*guarantorDomain.Guarantor, error) {
	var out guarantorDomain.Guarantor
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *GuarantorRepository) ListByLoan(ctx context.Context, loanID uint64) ([]guarantorDomain.Guarantor, error) {
	var out []guarantorDomain.Guarantor
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) CountApprovedByLoan(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&guarantorDomain.Guarantor{}).
		Where("loan_id = ? AND status = ?", loanID, guarantorDomain.StatusApproved).
		Count(&n)
	return n, res.Error
}
