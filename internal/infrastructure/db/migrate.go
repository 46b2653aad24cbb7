package db

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"gmfn-backend/internal/domain/clan"
	"gmfn-backend/internal/domain/guarantor"
	"gmfn-backend/internal/domain/loan"
	"gmfn-backend/internal/domain/user"
)

const guarantorMemberFK = "fk_guarantor_must_be_clan_member"

// Migrate creates/updates the schema. On mysql it also installs the
// composite FK that keeps every guarantor a member of the loan's clan;
// the check in the invite path alone would leave a check-then-insert race.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&user.User{},
		&clan.Clan{},
		&clan.Membership{},
		&loan.Loan{},
		&guarantor.Guarantor{},
	); err != nil {
		return err
	}
	if gdb.Dialector.Name() != "mysql" {
		return nil
	}
	var n int64
	err := gdb.Raw(
		`SELECT COUNT(*) FROM information_schema.table_constraints
		 WHERE constraint_schema = DATABASE() AND constraint_name = ?`,
		guarantorMemberFK,
	).Scan(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return gdb.Exec(
		`ALTER TABLE loan_guarantors
		 ADD CONSTRAINT ` + guarantorMemberFK + `
		 FOREIGN KEY (clan_id, guarantor_user_id)
		 REFERENCES clan_memberships (clan_id, user_id)`,
	).Error
}

// Bootstrap provisions the default clan once at deployment time, so the
// request path never has to win a create race to find it.
func Bootstrap(gdb *gorm.DB) error {
	c := &clan.Clan{Name: clan.DefaultName}
	err := gdb.Where("name = ?", clan.DefaultName).FirstOrCreate(c).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		err = gdb.Where("name = ?", clan.DefaultName).First(c).Error
	}
	if err != nil {
		return err
	}
	log.Printf("bootstrap: default clan id=%d", c.ID)
	return nil
}
