package services

import (
	"context"
	"log/slog"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// FailureKind classifies why an operation failed
type FailureKind string

const (
	KindAuth        FailureKind = "auth"
	KindRemoteWrite FailureKind = "remote_write"
	KindNotFound    FailureKind = "not_found"
	KindValidation  FailureKind = "validation"
)

// Notification is the user-visible outcome of an operation (a toast)
type Notification struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Variant     Variant     `json:"variant"`
	Kind        FailureKind `json:"kind,omitempty"`
}

func (n Notification) Failed() bool {
	return n.Kind != ""
}

func (n Notification) IsZero() bool {
	return n == Notification{}
}

func success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

func failure(kind FailureKind, title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive, Kind: kind}
}

var authRequired = failure(KindAuth, "Authentication Error", "Please sign in to continue.")

// Notifier receives every notification an operation produces
type Notifier interface {
	Notify(ctx context.Context, userID string, n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, userID string, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, userID string, n Notification) {
	f(ctx, userID, n)
}

// LogNotifier writes notifications to a structured logger
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, userID string, n Notification) {
	level := slog.LevelInfo
	if n.Failed() {
		level = slog.LevelWarn
	}
	l.Logger.Log(ctx, level, "notification",
		"user_id", userID,
		"title", n.Title,
		"description", n.Description,
		"kind", string(n.Kind),
	)
}
