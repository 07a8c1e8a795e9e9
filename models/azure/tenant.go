package azure

type Tenant struct {
	TenantId string `json:"tenantId,omitempty"`
}
