package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the tracked lifecycle stage of a single application.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusOA        Status = "OA"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every stage in display order.
var Statuses = []Status{
	StatusApplied,
	StatusOA,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus matches a stage name case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, known := range Statuses {
		if strings.EqualFold(string(known), s) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want one of Applied, OA, Interview, Offer, Rejected)", s)
}

// User is whatever the backend says about the signed-in account.
// Opaque to the client beyond displaying Name.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Application is one tracked job application. The ID is assigned by the
// backend; the client never generates one.
type Application struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	Role        string    `json:"role"`
	Status      Status    `json:"status"`
	CTC         string    `json:"ctc,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApplicationInput is the payload for creating a new application.
type ApplicationInput struct {
	CompanyName string `json:"companyName"`
	Role        string `json:"role"`
	Status      Status `json:"status"`
	CTC         string `json:"ctc,omitempty"`
}

// ApplicationPatch carries only the fields to change; nil means "leave
// untouched server-side".
type ApplicationPatch struct {
	CompanyName *string `json:"companyName,omitempty"`
	Role        *string `json:"role,omitempty"`
	Status      *Status `json:"status,omitempty"`
	CTC         *string `json:"ctc,omitempty"`
}
