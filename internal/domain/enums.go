package domain

// UserRole is the discriminator for the kind of account.
// Roles are ordered: each role may do everything the roles below it may.
type UserRole string

const (
	UserRoleClient         UserRole = "CLIENT"
	UserRoleContentEditor  UserRole = "CONTENT_EDITOR"
	UserRoleContentManager UserRole = "CONTENT_MANAGER"
	UserRoleCompanyManager UserRole = "COMPANY_MANAGER"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleClient, UserRoleContentEditor, UserRoleContentManager, UserRoleCompanyManager:
		return true
	}
	return false
}

func (r UserRole) rank() int {
	switch r {
	case UserRoleClient:
		return 1
	case UserRoleContentEditor:
		return 2
	case UserRoleContentManager:
		return 3
	case UserRoleCompanyManager:
		return 4
	}
	return 0
}

// AtLeast reports whether r grants at least the permissions of min.
func (r UserRole) AtLeast(min UserRole) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

// PurchaseType distinguishes city subscriptions from one-time map purchases.
type PurchaseType string

const (
	PurchaseTypeSubscription PurchaseType = "SUBSCRIPTION"
	PurchaseTypeOneTime      PurchaseType = "ONE_TIME"
)

func (t PurchaseType) String() string { return string(t) }

func (t PurchaseType) IsValid() bool {
	switch t {
	case PurchaseTypeSubscription, PurchaseTypeOneTime:
		return true
	}
	return false
}

// ChangeAction is the kind of catalog mutation a pending request carries.
type ChangeAction string

const (
	ChangeActionAdd    ChangeAction = "ADD"
	ChangeActionEdit   ChangeAction = "EDIT"
	ChangeActionDelete ChangeAction = "DELETE"
)

func (a ChangeAction) String() string { return string(a) }

func (a ChangeAction) IsValid() bool {
	switch a {
	case ChangeActionAdd, ChangeActionEdit, ChangeActionDelete:
		return true
	}
	return false
}

// ContentType identifies the catalog entity a pending request targets.
type ContentType string

const (
	ContentTypeMap  ContentType = "MAP"
	ContentTypeSite ContentType = "SITE"
	ContentTypeTour ContentType = "TOUR"
	ContentTypeCity ContentType = "CITY"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeMap, ContentTypeSite, ContentTypeTour, ContentTypeCity:
		return true
	}
	return false
}

// ApprovalStatus is the lifecycle state of a pending request or price update.
type ApprovalStatus string

const (
	ApprovalStatusOpen     ApprovalStatus = "OPEN"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusDenied   ApprovalStatus = "DENIED"
)

func (s ApprovalStatus) String() string { return string(s) }

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusOpen, ApprovalStatusApproved, ApprovalStatusDenied:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusDenied
}

// MapEventKind is the kind of raw activity event recorded against a map.
type MapEventKind string

const (
	MapEventView     MapEventKind = "VIEW"
	MapEventDownload MapEventKind = "DOWNLOAD"
)

func (k MapEventKind) String() string { return string(k) }

func (k MapEventKind) IsValid() bool {
	switch k {
	case MapEventView, MapEventDownload:
		return true
	}
	return false
}
