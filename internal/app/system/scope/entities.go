package scope

// Collection names the scope layer has rules for. Stores use the same
// constants when building queries so rule dispatch stays keyed to one set
// of tags.
const (
	ColUsers                = "users"
	ColClients              = "clients"
	ColCases                = "cases"
	ColCaseNotes            = "case_notes"
	ColCaseDocuments        = "case_documents"
	ColCaseTimeline         = "case_timeline"
	ColResearchProjects     = "research_projects"
	ColHearings             = "hearings"
	ColHearingNotifications = "hearing_notifications"
	ColTasks                = "tasks"
	ColCalendarEvents       = "calendar_events"
	ColTimeEntries          = "time_entries"
	ColExpenses             = "expenses"
	ColInvoices             = "invoices"
	ColPayments             = "payments"
	ColClientDocuments      = "client_documents"
	ColClientBillingInfo    = "client_billing_info"
	ColBillingCurrencies    = "billing_currencies"
	ColBillingRates         = "billing_rates"
	ColDocuments            = "documents"
	ColDocumentPermissions  = "document_permissions"
	ColDocumentComments     = "document_comments"
	ColMessages             = "messages"
	ColConversations        = "conversations"
	ColKnowledgeArticles    = "knowledge_articles"
	ColLegalPrecedents      = "legal_precedents"
)
