package app

import (
	"contactex.klederson.com/internal/auth"
	"contactex.klederson.com/internal/bluetooth"
	"contactex.klederson.com/internal/contacts"
)

// PoweredOnMsg carries the radio power state.
type PoweredOnMsg bool

// ScanningMsg carries the scan state.
type ScanningMsg bool

// PeripheralsMsg carries the discovered peripherals list.
type PeripheralsMsg []bluetooth.Peripheral

// ContactsMsg carries one contact list.
type ContactsMsg struct {
	Source contacts.Source
	List   []contacts.Contact
}

// SortOrderMsg carries the contact sort field.
type SortOrderMsg contacts.SortField

// SignInPromptMsg asks the user to approve the sign-in on another device.
type SignInPromptMsg struct {
	Code string
	URI  string
}

// SignInResultMsg reports the end of a sign-in handshake.
type SignInResultMsg struct {
	User auth.User
	Err  error
}

// ScanErrorMsg reports radio errors.
type ScanErrorMsg struct {
	Err error
}
