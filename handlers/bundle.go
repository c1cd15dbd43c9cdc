package handlers

import (
	userRepoPkg "stayease/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth       *AuthHandler
	Users      *UserHandler
	Apartments *ApartmentHandler
	Invoices   *InvoiceHandler
	Payments   *PaymentHandler
	Requests   *ServiceRequestHandler
	Feed       *FeedHandler
	Admin      *AdminHandler
	Media      *MediaHandler
}
