package splitter

import (
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/api/handlers/common"
	"github/fluxshare/go-fluxshare/internal/i18n"
	"github/fluxshare/go-fluxshare/internal/splitter"
	"github/fluxshare/go-fluxshare/internal/splitter/shares"
	"github/fluxshare/go-fluxshare/internal/types"
)

// sessionResponse renders a session. While the shares do not add up to 100 the response
// carries a localized hint.
func sessionResponse(s *api.Server, c echo.Context, session *splitter.Session) *types.SplitterSessionResponse {
	cfg := s.Sessions.Rebalancer().Config()
	total := session.Recipients.Total()
	validTotal := s.Sessions.Rebalancer().IsValidTotal(session.Recipients)

	id := strfmt.UUID(session.ID.String())
	expiresAt := strfmt.DateTime(session.TouchedAt.Add(s.Sessions.TTL()))

	res := &types.SplitterSessionResponse{
		ID:                &id,
		Recipients:        recipientsResponse(session.Recipients),
		Total:             swag.Float64(total),
		ValidTotal:        swag.Bool(validTotal),
		MinimumRecipients: swag.Int64(int64(cfg.MinimumRecipients)),
		ExpiresAt:         &expiresAt,
	}

	if !validTotal {
		res.Message = s.I18n.Translate("splitter_total_out_of_tolerance", common.Language(s, c), i18n.Data{
			"Total": strconv.FormatFloat(total, 'f', 2, 64),
		})
	}

	return res
}

func recipientsResponse(set shares.RecipientSet) []*types.Recipient {
	res := make([]*types.Recipient, 0, len(set))
	for _, r := range set {
		res = append(res, &types.Recipient{
			Address: r.Address,
			Share:   swag.Float64(r.Share),
		})
	}

	return res
}

// recipientSet converts a validated payload; nil entries have already been rejected.
func recipientSet(recipients []*types.Recipient) shares.RecipientSet {
	set := make(shares.RecipientSet, 0, len(recipients))
	for _, r := range recipients {
		set = append(set, shares.RecipientShare{
			Address: r.Address,
			Share:   swag.Float64Value(r.Share),
		})
	}

	return set
}
