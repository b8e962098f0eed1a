// internal/inquiry/notify.go

package inquiry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
)

// SESService is the slice of the SES API the dispatcher uses.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the slice of the SNS API the dispatcher uses.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NotifyDispatcher delivers an inquiry over email when the vendor has a
// contact email, falling back to SMS, and records every confirmed send in the
// inquiry log table.
type NotifyDispatcher struct {
	db        *sql.DB
	sesClient SESService
	snsClient SNSService
	fromEmail string
	log       logger.Logger
}

func NewNotifyDispatcher(db *sql.DB, sesClient SESService, snsClient SNSService, fromEmail string, log logger.Logger) *NotifyDispatcher {
	return &NotifyDispatcher{
		db:        db,
		sesClient: sesClient,
		snsClient: snsClient,
		fromEmail: fromEmail,
		log:       log,
	}
}

type vendorContact struct {
	name  string
	email sql.NullString
	phone sql.NullString
}

func (d *NotifyDispatcher) Dispatch(ctx context.Context, req Request) error {
	contact, err := d.lookupContact(ctx, req.VendorID)
	if err != nil {
		return err
	}

	inquiryID := uuid.New().String()
	body := d.composeBody(req, contact.name)

	switch {
	case d.sesClient != nil && contact.email.Valid && contact.email.String != "":
		if err := d.sendEmail(ctx, contact.email.String, body); err != nil {
			return errors.NewInquiryDispatchFailedError(req.VendorID, err)
		}
	case d.snsClient != nil && contact.phone.Valid && contact.phone.String != "":
		if err := d.sendSMS(ctx, contact.phone.String, body); err != nil {
			return errors.NewInquiryDispatchFailedError(req.VendorID, err)
		}
	default:
		return errors.NewInquiryDispatchFailedError(req.VendorID,
			fmt.Errorf("vendor %s has no contact channel", req.VendorID))
	}

	if err := d.logInquiry(ctx, inquiryID, req); err != nil {
		// Delivery already happened; surface the bookkeeping failure so the
		// caller can retry the log write, not the send.
		return errors.NewInquiryLogFailedError(fmt.Errorf("inquiry %s: %w", inquiryID, err))
	}

	d.log.Info("inquiry dispatched", map[string]interface{}{
		"inquiryId": inquiryID,
		"eventId":   req.EventID,
		"vendorId":  req.VendorID,
	})

	return nil
}

func (d *NotifyDispatcher) lookupContact(ctx context.Context, vendorID string) (*vendorContact, error) {
	const query = `
		SELECT name, contact_email, contact_phone
		FROM vendors
		WHERE id = $1`

	var c vendorContact
	err := d.db.QueryRowContext(ctx, query, vendorID).Scan(&c.name, &c.email, &c.phone)
	if err == sql.ErrNoRows {
		return nil, errors.NewVendorNotFoundError(vendorID)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("vendor contact lookup", err)
	}
	return &c, nil
}

func (d *NotifyDispatcher) composeBody(req Request, vendorName string) string {
	if req.Message != nil && *req.Message != "" {
		return *req.Message
	}
	return fmt.Sprintf("Hi %s, a customer is planning an event and would like to know your availability and pricing. Event reference: %s.", vendorName, req.EventID)
}

func (d *NotifyDispatcher) sendEmail(ctx context.Context, to, body string) error {
	subject := "New event inquiry"
	charset := "UTF-8"
	input := &ses.SendEmailInput{
		Source: &d.fromEmail,
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: &subject, Charset: &charset},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: &body, Charset: &charset},
			},
		},
	}
	_, err := d.sesClient.SendEmail(ctx, input)
	return err
}

func (d *NotifyDispatcher) sendSMS(ctx context.Context, phone, body string) error {
	input := &sns.PublishInput{
		PhoneNumber: &phone,
		Message:     &body,
	}
	_, err := d.snsClient.Publish(ctx, input)
	return err
}

func (d *NotifyDispatcher) logInquiry(ctx context.Context, inquiryID string, req Request) error {
	const query = `
		INSERT INTO inquiries (id, event_id, vendor_id, user_id, message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	var message interface{}
	if req.Message != nil {
		message = *req.Message
	}

	_, err := d.db.ExecContext(ctx, query,
		inquiryID, req.EventID, req.VendorID, req.UserID, message, time.Now().UTC())
	return err
}

// SentVendorIDs returns the vendors already contacted for an event, used to
// seed the dedup set before a bulk dispatch.
func (d *NotifyDispatcher) SentVendorIDs(ctx context.Context, eventID string) ([]string, error) {
	const query = `
		SELECT DISTINCT vendor_id
		FROM inquiries
		WHERE event_id = $1`

	rows, err := d.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("sent inquiries lookup", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewQueryExecutionFailedError("sent inquiries scan", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
