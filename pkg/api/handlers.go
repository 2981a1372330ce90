package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"beavernorth-backend/pkg/clients/blog"
	"beavernorth-backend/pkg/models"
	"beavernorth-backend/pkg/services"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	verification  services.VerificationService
	notifications services.NotificationService
	leads         services.LeadService
	blogClient    blog.Client
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	verification services.VerificationService,
	notifications services.NotificationService,
	leads services.LeadService,
	blogClient blog.Client,
) *Handlers {
	return &Handlers{
		verification:  verification,
		notifications: notifications,
		leads:         leads,
		blogClient:    blogClient,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendOTP starts a phone verification for the requested number
func (h *Handlers) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or invalid phone number"})
		return
	}

	result, err := h.verification.Send(req.To)
	if err != nil {
		log.Printf("Error sending OTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"verificationSid": result.VerificationSID,
		"to":              result.To,
		"message":         result.Message,
	})
}

// VerifyOTP checks the code the user entered. A wrong code is a normal
// response, not a server error.
func (h *Handlers) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing phone number or code"})
		return
	}

	status, err := h.verification.Check(req.To, req.Code)
	if err != nil {
		log.Printf("Error verifying OTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": status == services.StatusApproved,
		"status":  string(status),
	})
}

// SubmitLead re-checks the entered code against the provider and persists
// the lead only on approval, so a lead can never be written without a
// verified phone regardless of what the client claims.
func (h *Handlers) SubmitLead(c *gin.Context) {
	var req models.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing lead data or verification code"})
		return
	}

	status, err := h.verification.Check(req.LeadData.E164(), req.Code)
	if err != nil {
		log.Printf("Error verifying OTP during submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Verification is unavailable right now"})
		return
	}
	if status != services.StatusApproved {
		c.JSON(http.StatusOK, gin.H{"success": false, "status": string(status)})
		return
	}

	id, err := h.leads.Submit(c.Request.Context(), req.LeadData)
	if err != nil {
		log.Printf("Error persisting lead: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not save your request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  string(status),
		"id":      id,
	})
}

// SendLeadNotification fires the lead email side effect. Provider errors
// degrade to a demo-mode style success so the capture flow is never blocked
// by a notification problem.
func (h *Handlers) SendLeadNotification(c *gin.Context) {
	var req models.LeadNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing lead data"})
		return
	}

	recipients, err := h.notifications.SendLeadEmail(req.LeadData)
	if err != nil {
		log.Printf("Lead email notification failed: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"recipients": recipients,
			"message":    "Notification logged (Demo Mode)",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipients": recipients,
	})
}

// SendLeadSMS fires the lead SMS side effect, reporting per-recipient
// success or failure.
func (h *Handlers) SendLeadSMS(c *gin.Context) {
	var req models.LeadNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing lead data"})
		return
	}

	results := h.notifications.SendLeadSMS(req.LeadData)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}

// BlogPosts proxies the published blog feed
func (h *Handlers) BlogPosts(c *gin.Context) {
	posts, err := h.blogClient.FetchPosts()
	if err != nil {
		log.Printf("Error fetching blog posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not load blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
	})
}
