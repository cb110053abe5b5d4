package dto

type TeamMemberRequest struct {
	ID string `json:"id" validate:"required,uuid" msg:"ID No válido"`
}

type FindMemberRequest struct {
	Email string `json:"email" validate:"required,email" msg:"E-mail no válido"`
}

func (r *FindMemberRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }
