package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/quickserve/quickserve_backend/models"
)

// SaveNotification saves an in-app notification to the database. Callers
// fire it as a side effect and must not fail their own operation on error.
func SaveNotification(db *mongo.Client, userID primitive.ObjectID, notifType, title, message string, refID *primitive.ObjectID, refModel models.ReferenceModel) error {
	if refModel != "" && !refModel.Valid() {
		return fmt.Errorf("unknown reference model %q", refModel)
	}

	collection := db.Database(dbName()).Collection("notifications")

	notification := models.Notification{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Type:           notifType,
		Title:          title,
		Message:        message,
		ReferenceID:    refID,
		ReferenceModel: refModel,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}

	_, err := collection.InsertOne(context.Background(), notification)
	return err
}

// SendEmail sends a plain-text email using the SMTP settings from the environment
func SendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}

// NotifyProviderDecision notifies a provider's owning user about an admin
// approval decision, by email and in-app notification
func NotifyProviderDecision(db *mongo.Client, provider *models.Provider, owner *models.User, approved bool) {
	decision := "approved"
	if !approved {
		decision = "rejected"
	}

	subject := fmt.Sprintf("Your provider profile has been %s", decision)
	body := fmt.Sprintf("Dear %s,\n\nYour %s provider profile has been %s by the Quickserve team.\n\nBest regards,\nQuickserve", owner.Name, provider.ServiceType, decision)
	if err := SendEmail(owner.Email, subject, body); err != nil {
		log.Printf("Failed to send approval email to %s: %v", owner.Email, err)
	}

	refID := provider.ID
	if err := SaveNotification(db, owner.ID, "provider_approval", subject,
		fmt.Sprintf("Your provider profile has been %s.", decision), &refID, models.ReferenceProvider); err != nil {
		log.Printf("Failed to save approval notification: %v", err)
	}
}
