package services

// ServiceContainer bundles every service facade so handlers can be wired from a
// single value.
type ServiceContainer struct {
	Authorizer AuthorizerSvc
	Ledger     LedgerSvcFacade
	Journal    JournalSvcFacade
	Reporting  ReportingSvcFacade
	Party      PartySvcFacade
	Auth       AuthSvcFacade
}
