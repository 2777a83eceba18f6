package services

import (
	"strings"

	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"gorm.io/gorm"
)

// IssueCredit mints a new ACTIVE credit for a user, optionally linked to the
// activity that justifies it. At most one credit may ever reference a given
// activity; the unique index backs up the pre-check under races.
func IssueCredit(userID string, amount float64, activityID, tokenID *string) (*models.CarbonCredit, error) {
	if amount <= 0 {
		return nil, errors.InvalidInput("Credit amount must be positive")
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	credit := models.CarbonCredit{
		UserID:     userID,
		ActivityID: activityID,
		Amount:     amount,
		Status:     models.CreditActive,
		TokenID:    tokenID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if activityID != nil {
			var activity models.Activity
			if err := tx.Select("id").First(&activity, "id = ?", *activityID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.NotFound("Activity not found")
				}
				return errors.StorageUnavailable(err)
			}

			var existing models.CarbonCredit
			if err := tx.Select("id").First(&existing, "activity_id = ?", *activityID).Error; err == nil {
				return errors.Conflict("Activity already has a carbon credit associated")
			} else if err != gorm.ErrRecordNotFound {
				return errors.StorageUnavailable(err)
			}
		}

		if err := tx.Create(&credit).Error; err != nil {
			if isUniqueViolation(err) {
				return errors.Conflict("Activity already has a carbon credit associated")
			}
			return errors.StorageUnavailable(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &credit, nil
}

// ListForSale moves a credit ACTIVE -> FOR_SALE at the given price. The
// marketplace calls the tx-scoped variant so the credit flip and the order
// creation commit or roll back together.
func ListForSale(creditID string, price float64) (*models.CarbonCredit, error) {
	var credit *models.CarbonCredit
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		credit, txErr = listForSale(tx, creditID, price)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}

func listForSale(tx *gorm.DB, creditID string, price float64) (*models.CarbonCredit, error) {
	if price <= 0 {
		return nil, errors.InvalidInput("Listing price must be positive")
	}

	res := tx.Model(&models.CarbonCredit{}).
		Where("id = ? AND status = ?", creditID, models.CreditActive).
		Updates(map[string]interface{}{
			"status": models.CreditForSale,
			"price":  price,
		})
	if res.Error != nil {
		return nil, errors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, creditTransitionError(tx, creditID, "list for sale")
	}

	return loadCredit(tx, creditID)
}

// TransferOwnership moves a FOR_SALE credit to a new owner, marking it SOLD.
// Irreversible: SOLD is terminal.
func transferOwnership(tx *gorm.DB, creditID, toUserID string) (*models.CarbonCredit, error) {
	res := tx.Model(&models.CarbonCredit{}).
		Where("id = ? AND status = ?", creditID, models.CreditForSale).
		Updates(map[string]interface{}{
			"user_id": toUserID,
			"status":  models.CreditSold,
		})
	if res.Error != nil {
		return nil, errors.StorageUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, creditTransitionError(tx, creditID, "transfer")
	}

	return loadCredit(tx, creditID)
}

// RetireCredit permanently removes a credit from circulation, claiming the
// offset. Only the owner may retire, and only from ACTIVE or FOR_SALE. A
// listed credit's open sell orders are cancelled in the same transaction.
func RetireCredit(creditID, userID string) (*models.CarbonCredit, error) {
	var credit *models.CarbonCredit
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		current, err := loadCredit(tx, creditID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return errors.Forbidden("Only the credit owner can retire it")
		}
		if !current.Status.CanTransition(models.CreditRetired) {
			return errors.InvalidState("Cannot retire a credit in status " + string(current.Status))
		}

		res := tx.Model(&models.CarbonCredit{}).
			Where("id = ? AND status = ?", creditID, current.Status).
			Updates(map[string]interface{}{
				"status": models.CreditRetired,
				"price":  nil,
			})
		if res.Error != nil {
			return errors.StorageUnavailable(res.Error)
		}
		if res.RowsAffected == 0 {
			return creditTransitionError(tx, creditID, "retire")
		}

		// A retired credit can no longer be sold: close out its open listings.
		if current.Status == models.CreditForSale {
			if err := tx.Model(&models.MarketplaceOrder{}).
				Where("carbon_credit_id = ? AND status = ?", creditID, models.OrderOpen).
				Update("status", models.OrderCancelled).Error; err != nil {
				return errors.StorageUnavailable(err)
			}
		}

		credit, err = loadCredit(tx, creditID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return credit, nil
}

// GetCredits lists credits, optionally filtered by owner and status.
func GetCredits(userID string, status models.CreditStatus) ([]models.CarbonCredit, error) {
	query := database.DB.Model(&models.CarbonCredit{}).Preload("User").Preload("Activity")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var credits []models.CarbonCredit
	if err := query.Order("created_at desc").Find(&credits).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return credits, nil
}

func loadCredit(tx *gorm.DB, creditID string) (*models.CarbonCredit, error) {
	var credit models.CarbonCredit
	if err := tx.First(&credit, "id = ?", creditID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Carbon credit not found")
		}
		return nil, errors.StorageUnavailable(err)
	}
	return &credit, nil
}

// creditTransitionError distinguishes a missing credit from one whose status
// disallows the attempted transition after a compare-and-set matched no rows.
func creditTransitionError(tx *gorm.DB, creditID, action string) error {
	credit, err := loadCredit(tx, creditID)
	if err != nil {
		return err
	}
	return errors.InvalidState("Cannot " + action + ": credit is " + string(credit.Status))
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
