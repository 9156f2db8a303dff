package conversation

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-bot/internal/logging"
	"github.com/BruksfildServices01/barber-bot/internal/notify"
)

func (c *Controller) startBroadcast(ctx context.Context, in Input) ([]Reply, error) {
	admin, err := c.isAdmin(in.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return []Reply{withKeyboard(msgUseMenu, mainMenu())}, nil
	}

	if err := c.save(ctx, in, Session{State: StateAwaitingAdPhoto}); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgSendAdPhoto, [][]string{{BtnBack}})}, nil
}

func (c *Controller) receiveAdPhoto(ctx context.Context, in Input, sess Session) ([]Reply, error) {
	if in.PhotoFileID == "" {
		return []Reply{text(msgSendAdPhoto)}, nil
	}

	sess.AdPhotoID = in.PhotoFileID
	sess.State = StateAwaitingAdCaption
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{text(msgSendAdCaption)}, nil
}

func (c *Controller) receiveAdCaption(ctx context.Context, in Input, sess Session, caption string) ([]Reply, error) {
	if caption == "" || in.PhotoFileID != "" {
		return []Reply{text(msgSendAdCaption)}, nil
	}

	admin, err := c.isAdmin(in.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return c.endFlow(ctx, in, msgUseMenu)
	}

	if err := c.store.Delete(ctx, in.UserID); err != nil {
		return nil, err
	}

	photo := notify.Photo{FileID: sess.AdPhotoID}
	if c.opts.Reporter == nil {
		report, err := c.broadcaster.Broadcast(ctx, photo, caption)
		if err != nil {
			return nil, err
		}
		return []Reply{withKeyboard(broadcastSummary(report), adminMenu())}, nil
	}

	chatID := in.ChatID
	if chatID == 0 {
		chatID = in.UserID
	}

	// the update loop must not wait for the fan-out
	bg := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.reportBroadcast(bg, chatID, photo, caption)
	}()

	return []Reply{withKeyboard(msgAdQueued, adminMenu())}, nil
}

func (c *Controller) reportBroadcast(ctx context.Context, chatID int64, photo notify.Photo, caption string) {
	logger := logging.FromContext(ctx, c.logger)

	msg := msgSomethingWrong
	report, err := c.broadcaster.Broadcast(ctx, photo, caption)
	if err != nil {
		logger.Error("broadcast failed", "error", err)
	} else {
		msg = broadcastSummary(report)
	}

	if err := c.opts.Reporter.SendText(ctx, chatID, msg); err != nil {
		logger.Warn("broadcast summary not delivered", "chat_id", chatID, "error", err)
	}
}

func broadcastSummary(report notify.Report) string {
	if report.Total() == 0 {
		return msgNoRecipients
	}
	return fmt.Sprintf(msgAdSent, report.Sent, report.Skipped, report.Failed)
}

func (c *Controller) adminPanel(ctx context.Context, in Input) ([]Reply, error) {
	admin, err := c.isAdmin(in.UserID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return []Reply{withKeyboard(msgUseMenu, mainMenu())}, nil
	}
	return []Reply{text(fmt.Sprintf(msgAdminPanel, c.opts.AdminPanelURL))}, nil
}
