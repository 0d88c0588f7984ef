package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Audit actions recorded by the booking flow.
const (
	AuditActionBook   = "appointment.book"
	AuditActionReject = "appointment.reject"
	AuditActionCancel = "appointment.cancel"
)

// AuditService writes an audit trail of booking decisions as structured log entries.
type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogReject(ctx context.Context, action string, reason string, candidate interface{})
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) {
	s.entry(ctx, action).WithFields(logrus.Fields{
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	}).Info("audit")
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.entry(ctx, action).WithFields(logrus.Fields{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}).Info("audit")
}

// LogReject logs a submission that was turned away
func (s *auditService) LogReject(ctx context.Context, action string, reason string, candidate interface{}) {
	s.entry(ctx, action).WithFields(logrus.Fields{
		"reason":    reason,
		"candidate": candidate,
	}).Info("audit")
}

func (s *auditService) entry(ctx context.Context, action string) *logrus.Entry {
	return s.log.WithContext(ctx).WithFields(logrus.Fields{
		"audit":  true,
		"action": action,
	})
}
