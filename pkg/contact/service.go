// Package contact relays contact-form submissions by email: one internal
// notification, then one acknowledgment to the submitter. Both sends run
// sequentially and a failure in either aborts the submission.
package contact

import (
	"fmt"
	"strings"

	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/email"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/logger"
	"github.com/ZETTAI-INC/AITUKAERUSTAF/pkg/models"
)

// Recorder counts relayed submissions. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordContactSubmission()
}

// Service relays contact-form submissions
type Service struct {
	sender         email.Sender
	notificationTo string
	log            logger.Logger
	recorder       Recorder
}

// NewService creates a new contact service
func NewService(sender email.Sender, notificationTo string, log logger.Logger) *Service {
	return &Service{
		sender:         sender,
		notificationTo: notificationTo,
		log:            log,
	}
}

// WithRecorder attaches a metrics recorder. Optional.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Submit sends the internal notification followed by the customer
// acknowledgment. There is no retry and no partial-success signal: if the
// acknowledgment fails after the notification went out, the caller still
// sees one generic failure.
func (s *Service) Submit(req models.ContactRequest) error {
	fullName := fmt.Sprintf("%s %s", req.LastName, req.FirstName)

	notification := strings.Join([]string{
		"新しいお問い合わせがありました。",
		"",
		fmt.Sprintf("氏名: %s", fullName),
		fmt.Sprintf("会社名: %s", req.CompanyName),
		fmt.Sprintf("メールアドレス: %s", req.Email),
		fmt.Sprintf("電話番号: %s", req.Phone),
		fmt.Sprintf("お問い合わせ種別: %s", req.InquiryType),
		"",
		"お問い合わせ内容:",
		req.InquiryDetail,
	}, "\n")

	if err := s.sender.Send(s.notificationTo, "", fmt.Sprintf("【オタスケAI】新規お問い合わせ: %s", req.InquiryType), notification); err != nil {
		return fmt.Errorf("internal notification failed: %w", err)
	}

	acknowledgment := strings.Join([]string{
		fmt.Sprintf("%s 様", fullName),
		"",
		"この度はオタスケAIにお問い合わせいただき、誠にありがとうございます。",
		"以下の内容でお問い合わせを受け付けました。",
		"",
		fmt.Sprintf("お問い合わせ種別: %s", req.InquiryType),
		"",
		"お問い合わせ内容:",
		req.InquiryDetail,
		"",
		"担当者より1〜2営業日以内にご連絡いたします。",
		"しばらくお待ちくださいませ。",
		"",
		"---",
		"オタスケAI",
		"株式会社ZETTAI",
		"TEL: 070-8960-8679（平日 10:00-18:00）",
	}, "\n")

	if err := s.sender.Send(req.Email, fullName, "【オタスケAI】お問い合わせを受け付けました", acknowledgment); err != nil {
		return fmt.Errorf("acknowledgment email failed: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordContactSubmission()
	}

	s.log.Info("contact form relayed", "inquiry_type", req.InquiryType)
	return nil
}
