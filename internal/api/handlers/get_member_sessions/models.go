package get_member_sessions

import (
	"net/url"

	"github.com/m04kA/GMS-SessionService/internal/service/sessions/models"
)

// ToServiceRequest строит запрос сервиса из path и query параметров
func ToServiceRequest(memberID, userID int64, query url.Values) *models.GetMemberSessionsRequest {
	req := &models.GetMemberSessionsRequest{
		MemberID: memberID,
		UserID:   userID,
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req
}
