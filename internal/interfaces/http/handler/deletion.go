package handler

import (
	appdeletion "github.com/atlascrm/backend/internal/application/deletion"
	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeletionHandler handles the deletion-approval workflow API endpoints
type DeletionHandler struct {
	BaseHandler
	deletions *appdeletion.Service
	policies  *appdeletion.PolicyService
}

// NewDeletionHandler creates a new DeletionHandler
func NewDeletionHandler(deletions *appdeletion.Service, policies *appdeletion.PolicyService) *DeletionHandler {
	return &DeletionHandler{
		deletions: deletions,
		policies:  policies,
	}
}

// RegisterRoutes registers deletion workflow routes
func (h *DeletionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/deletion-requests")
	{
		requests.POST("", middleware.RequireAction("deletion_requests", "create"), h.RequestDeletion)
		requests.GET("", middleware.RequireAction("deletion_requests", "read"), h.ListPending)
		requests.POST("/:id/resolve", middleware.RequireAction("deletion_requests", "resolve"), h.ResolveDeletion)
	}
	policies := rg.Group("/deletion-policies")
	{
		policies.GET("", middleware.RequireAction("deletion_policies", "read"), h.ListPolicies)
		policies.PUT("/:record_type", middleware.RequireAction("deletion_policies", "write"), h.SetPolicy)
	}
}

// RequestDeletionRequest is the payload for entering the deletion workflow
type RequestDeletionRequest struct {
	RecordType string   `json:"record_type" binding:"required"`
	RecordIDs  []string `json:"record_ids" binding:"required,min=1,dive,uuid"`
}

// RequestDeletion enters the deletion workflow for one or more records
func (h *DeletionHandler) RequestDeletion(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context is required")
		return
	}

	var req RequestDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recordIDs := make([]uuid.UUID, 0, len(req.RecordIDs))
	for _, raw := range req.RecordIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid record ID: "+raw)
			return
		}
		recordIDs = append(recordIDs, id)
	}

	result, err := h.deletions.RequestDeletion(c.Request.Context(), appdeletion.RequestDeletionInput{
		CompanyID:   companyID,
		RecordType:  deletion.RecordType(req.RecordType),
		RecordIDs:   recordIDs,
		RequestedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListPending lists the company's unresolved deletion requests
func (h *DeletionHandler) ListPending(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	requests, err := h.deletions.PendingRequests(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// ResolveDeletionRequest is the approver's decision payload
type ResolveDeletionRequest struct {
	Action string `json:"action" binding:"required,oneof=cancel delete"`
}

// ResolveDeletion settles a pending deletion request
func (h *DeletionHandler) ResolveDeletion(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	approverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context is required")
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req ResolveDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err = h.deletions.ResolveDeletion(c.Request.Context(), companyID, requestID,
		appdeletion.ResolveAction(req.Action), approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPolicies lists the company's deletion policies
func (h *DeletionHandler) ListPolicies(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	policies, err := h.policies.ListPolicies(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, policies)
}

// SetPolicyRequest is the payload for configuring a deletion policy
type SetPolicyRequest struct {
	RequireApproval bool `json:"require_approval"`
}

// SetPolicy configures whether deletions of a record type need approval
func (h *DeletionHandler) SetPolicy(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req SetPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	policy, err := h.policies.SetPolicy(c.Request.Context(), companyID,
		deletion.RecordType(c.Param("record_type")), req.RequireApproval)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, policy)
}
