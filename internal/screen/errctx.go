package screen

const (
	errorServiceDispatch   = "dispatch"
	errorServiceUpdateTabs = "update_tabs"
	errorServiceRender     = "render"
)

func tag(service, detail string) string {
	if service == "" {
		return detail
	}
	if detail == "" {
		return service
	}
	return service + ": " + detail
}
