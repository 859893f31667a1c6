package repository

import (
	"context"
	"time"

	"github.com/postalclerk/clerk-server/internal/models"
)

const mailColumns = `
	m.id, m.mail_id, m.sender_name, m.sender_address,
	m.receiver_name, m.receiver_address, m.mail_type, m.weight,
	m.status, m.clerk_id, m.created_at, c.name AS clerk_name
`

func (r *PostgresRepository) CreateMail(ctx context.Context, mail *models.Mail) error {
	query := `
		INSERT INTO mails (
			mail_id, sender_name, sender_address,
			receiver_name, receiver_address,
			mail_type, weight, clerk_id, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	if mail.Status == "" {
		mail.Status = models.MailStatusReceived
	}
	mail.CreatedAt = time.Now().UTC()

	return r.db.QueryRowxContext(ctx, query,
		mail.MailID, mail.SenderName, mail.SenderAddress,
		mail.ReceiverName, mail.ReceiverAddress,
		mail.MailType, mail.Weight, mail.ClerkID, mail.Status, mail.CreatedAt).Scan(&mail.ID)
}

// ListMails returns mails newest first with the creating clerk's name
func (r *PostgresRepository) ListMails(ctx context.Context) ([]models.Mail, error) {
	query := `SELECT ` + mailColumns + `
		FROM mails m
		LEFT JOIN clerks c ON m.clerk_id = c.id
		ORDER BY m.created_at DESC, m.id DESC
	`

	mails := []models.Mail{}
	if err := r.db.SelectContext(ctx, &mails, query); err != nil {
		return nil, err
	}

	return mails, nil
}

func (r *PostgresRepository) GetMail(ctx context.Context, id int64) (*models.Mail, error) {
	query := `SELECT ` + mailColumns + `
		FROM mails m
		LEFT JOIN clerks c ON m.clerk_id = c.id
		WHERE m.id = $1
	`

	var mail models.Mail
	if err := r.db.GetContext(ctx, &mail, query, id); err != nil {
		return nil, notFoundAsNil(err)
	}

	return &mail, nil
}

// UpdateMailStatus overwrites the status; any text is accepted
func (r *PostgresRepository) UpdateMailStatus(ctx context.Context, id int64, status string) error {
	return r.execAffectingOne(ctx, `UPDATE mails SET status = $1 WHERE id = $2`, status, id)
}

func (r *PostgresRepository) DeleteMail(ctx context.Context, id int64) error {
	return r.execAffectingOne(ctx, `DELETE FROM mails WHERE id = $1`, id)
}
