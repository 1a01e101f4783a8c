package usecase

import (
	"context"

	"health-services-backend/internal/delivery/dto"
	"health-services-backend/internal/domain/entity"
	"health-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type EmailUsecase interface {
	Send(ctx context.Context, userID uuid.UUID, req *dto.SendEmailRequest) error
}

type emailUsecase struct {
	log   *logrus.Logger
	mail  service.MailService
	audit service.AuditService
}

func NewEmailUsecase(log *logrus.Logger, mail service.MailService, audit service.AuditService) EmailUsecase {
	return &emailUsecase{
		log:   log,
		mail:  mail,
		audit: audit,
	}
}

func (u *emailUsecase) Send(ctx context.Context, userID uuid.UUID, req *dto.SendEmailRequest) error {
	if err := u.mail.SendTransactional(ctx, req.Recipients, req.Subject, req.HTMLContent); err != nil {
		return err
	}

	u.audit.LogAction(ctx, &userID, entity.AuditActionEmailDispatch, entity.JSON{
		"recipient_count": len(req.Recipients),
	})

	return nil
}
