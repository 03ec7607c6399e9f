package push

import (
	"context"
	"strconv"

	"firebase.google.com/go/v4/messaging"
	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/repositories"
	"github.com/meddeck-app/backend/pkg/metrics"
	"go.uber.org/zap"
)

// FCMPusher delivers persisted notification records to the recipient's
// registered devices over Firebase Cloud Messaging. Delivery is best effort:
// failures are logged and counted, never surfaced to the fan-out handlers.
type FCMPusher struct {
	client     *messaging.Client
	deviceRepo repositories.DeviceRepository
	userRepo   repositories.UserRepository
	log        *zap.Logger
}

// NewFCMPusher creates a new FCMPusher
func NewFCMPusher(client *messaging.Client, deviceRepo repositories.DeviceRepository, userRepo repositories.UserRepository, log *zap.Logger) *FCMPusher {
	return &FCMPusher{
		client:     client,
		deviceRepo: deviceRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

// Push sends the record to every active device token of the recipient
func (p *FCMPusher) Push(ctx context.Context, record *models.NotificationRecord) {
	tokens, err := p.deviceRepo.GetActiveTokensByUser(record.RecipientID)
	if err != nil {
		metrics.PushDeliveryFailures.Inc()
		p.log.Warn("failed to load device tokens",
			zap.String("recipient_id", record.RecipientID),
			zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	body := p.messageBody(record)
	data := map[string]string{
		"kind":       strconv.Itoa(int(record.Kind)),
		"content_id": record.ContentID,
		"record_id":  record.RecordID,
	}

	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "MedDeck",
				Body:  body,
			},
			Data: data,
		}
		if _, err := p.client.Send(ctx, msg); err != nil {
			metrics.PushDeliveryFailures.Inc()
			p.log.Warn("FCM send failed",
				zap.String("recipient_id", record.RecipientID),
				zap.Error(err))
			if messaging.IsUnregistered(err) {
				if derr := p.deviceRepo.DeactivateToken(token); derr != nil {
					p.log.Warn("failed to deactivate stale token", zap.Error(derr))
				}
			}
		}
	}
}

func (p *FCMPusher) messageBody(record *models.NotificationRecord) string {
	actor := "Someone"
	if record.ActorID != "" {
		if user, err := p.userRepo.GetUserByUID(record.ActorID); err == nil {
			actor = user.DisplayName
		}
	}

	switch record.Kind {
	case models.KindLikeContent:
		return actor + " liked your post"
	case models.KindLikeComment, models.KindLikeReply:
		return actor + " liked your comment"
	case models.KindComment:
		return actor + " commented on your post"
	case models.KindReply:
		return actor + " replied to your comment"
	case models.KindCaseRevision:
		return "A case you bookmarked was updated"
	case models.KindDiagnosisResolve:
		return "A case you bookmarked was resolved with a diagnosis"
	case models.KindNewFollower:
		return actor + " started following you"
	default:
		return "You have a new notification"
	}
}
