package ledger

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	oerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	accept "github.com/timewasted/go-accept-headers"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/api"
	"github/fluxshare/go-fluxshare/internal/types"
	"github/fluxshare/go-fluxshare/internal/util"
)

const mimeTextCSV = "text/csv"

func GetActivityRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Ledger.GET("/activity", getActivityHandler(s))
}

// getActivityHandler lists the transactions built for an address, newest first. The list is
// served as JSON or, if the client prefers it, as CSV.
func getActivityHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		address, err := addressQueryParam(c)
		if err != nil {
			return err
		}

		limit := activity.DefaultListLimit
		if raw := c.QueryParam("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil {
				return util.ValidateParam(c, oerrors.InvalidType("limit", "query", "integer", raw))
			}
		}

		contentType, err := negotiateActivityContentType(c.Request().Header.Get(echo.HeaderAccept))
		if err != nil {
			return err
		}

		entries, err := s.Activity.ListBySender(ctx, address, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list activity")
		}

		if contentType == mimeTextCSV {
			return writeActivityCSV(c, entries)
		}

		res := &types.GetActivityResponse{
			Entries: make([]*types.ActivityItem, 0, len(entries)),
		}
		for _, e := range entries {
			createdAt := strfmt.DateTime(e.CreatedAt)
			res.Entries = append(res.Entries, &types.ActivityItem{
				ID:        swag.String(strconv.FormatInt(e.ID, 10)),
				Kind:      swag.String(e.Kind),
				Sender:    swag.String(e.Sender),
				PackageID: e.PackageID,
				TxDigest:  swag.String(e.TxDigest),
				CreatedAt: &createdAt,
				Metadata:  e.Metadata,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func negotiateActivityContentType(header string) (string, error) {
	if header == "" {
		return echo.MIMEApplicationJSON, nil
	}

	contentType, err := accept.Negotiate(header, echo.MIMEApplicationJSON, mimeTextCSV)
	if err != nil || contentType == "" {
		return "", echo.NewHTTPError(http.StatusNotAcceptable)
	}

	return contentType, nil
}

func writeActivityCSV(c echo.Context, entries []activity.Entry) error {
	c.Response().Header().Set(echo.HeaderContentType, mimeTextCSV+"; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"id", "created_at", "kind", "sender", "package_id", "tx_digest", "metadata"}); err != nil {
		return err
	}

	for _, e := range entries {
		metadata, err := json.Marshal(e.Metadata)
		if err != nil {
			return errors.Wrapf(err, "failed to encode metadata of activity %d", e.ID)
		}

		if err := w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Kind,
			e.Sender,
			e.PackageID,
			e.TxDigest,
			string(metadata),
		}); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
