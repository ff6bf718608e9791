package handler

import "claimflow/internal/claim/models"

// StartRequest is the HTTP request body for POST /claims.
type StartRequest struct {
	Policy string `json:"policy"`
}

// SubmitPageRequest is the HTTP request body for POST
// /claims/{claimID}/pages/{slug}. Answers are keyed by attribute name;
// a null value clears the answer.
type SubmitPageRequest struct {
	Answers map[string]any `json:"answers"`
}

// PersonalDetailsRequest is the HTTP request body for PUT
// /claims/{claimID}/personal-details.
type PersonalDetailsRequest struct {
	FirstName              string `json:"first_name"`
	Surname                string `json:"surname"`
	DateOfBirth            string `json:"date_of_birth"`
	NationalInsuranceNo    string `json:"national_insurance_number"`
	TeacherReferenceNumber string `json:"teacher_reference_number"`
	Email                  string `json:"email"`
}

// Model converts the request to the domain form.
func (r PersonalDetailsRequest) Model() models.PersonalDetails {
	return models.PersonalDetails{
		FirstName:              r.FirstName,
		Surname:                r.Surname,
		DateOfBirth:            r.DateOfBirth,
		NationalInsuranceNo:    r.NationalInsuranceNo,
		TeacherReferenceNumber: r.TeacherReferenceNumber,
		Email:                  r.Email,
	}
}

// BankDetailsRequest is the HTTP request body for PUT
// /claims/{claimID}/bank-details.
type BankDetailsRequest struct {
	AccountName   string `json:"account_name"`
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
	RollNumber    string `json:"roll_number,omitempty"`
}

// Model converts the request to the domain form.
func (r BankDetailsRequest) Model() models.BankDetails {
	return models.BankDetails{
		AccountName:   r.AccountName,
		SortCode:      r.SortCode,
		AccountNumber: r.AccountNumber,
		RollNumber:    r.RollNumber,
	}
}

// AmendAwardRequest is the HTTP request body for POST
// /claims/{claimID}/award-amendments.
type AmendAwardRequest struct {
	AmountPence int64  `json:"amount_pence"`
	AmendedBy   string `json:"amended_by"`
}
