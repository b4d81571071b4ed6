package jwttoken

import "feria/internal/identity"

// ServiceAdapter exposes the JWT service through the gateway's
// CredentialVerifier interface.
type ServiceAdapter struct {
	service *Service
}

func NewServiceAdapter(service *Service) *ServiceAdapter {
	return &ServiceAdapter{service: service}
}

func (a *ServiceAdapter) ValidateToken(tokenString string) (*identity.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &identity.Claims{SubjectID: claims.Subject}, nil
}
