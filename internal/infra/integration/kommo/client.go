package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

const referralTag = "indicacao_parceiro"

// Client leva as indicações para o funil comercial no Kommo.
type Client struct {
	apiToken   string
	baseURL    string
	statusID   int
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiToken string, statusID int, logger *zap.Logger) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		statusID:   statusID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// CreateReferralLead cria (ou reaproveita) o contato e abre um lead para a
// empresa indicada.
func (c *Client) CreateReferralLead(ctx context.Context, event queue.Event) error {
	if c.apiToken == "" {
		return fmt.Errorf("kommo não configurado")
	}

	contactID, err := c.findOrCreateContact(ctx, event)
	if err != nil {
		return fmt.Errorf("erro ao criar/buscar contato: %w", err)
	}

	lead := leadPayload{
		Name:     fmt.Sprintf("%s - indicação de %s", event.CompanyName, event.PartnerName),
		StatusID: c.statusID,
		Embedded: leadEmbedded{
			Tags:     []tag{{Name: referralTag}},
			Contacts: []contactRef{{ID: contactID}},
		},
	}

	var result embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/leads", []leadPayload{lead}, &result); err != nil {
		return fmt.Errorf("erro ao criar lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return fmt.Errorf("lead não criado")
	}

	c.logger.Info("kommo: lead criado",
		zap.Int("lead_id", result.Embedded.Leads[0].ID),
		zap.String("referral_id", event.ReferralID))
	return nil
}

func (c *Client) findOrCreateContact(ctx context.Context, event queue.Event) (int, error) {
	if event.Phone != "" {
		var found embeddedIDs
		err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(event.Phone), nil, &found)
		if err == nil && len(found.Embedded.Contacts) > 0 {
			return found.Embedded.Contacts[0].ID, nil
		}
	}

	contact := contactPayload{Name: event.ContactName}
	if event.Phone != "" {
		contact.CustomFields = append(contact.CustomFields, customField{
			FieldCode: "PHONE",
			Values:    []fieldValue{{Value: event.Phone, EnumCode: "WORK"}},
		})
	}
	if event.Email != "" {
		contact.CustomFields = append(contact.CustomFields, customField{
			FieldCode: "EMAIL",
			Values:    []fieldValue{{Value: event.Email, EnumCode: "WORK"}},
		})
	}

	var created embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/contacts", []contactPayload{contact}, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("erro ao obter ID do contato criado")
	}
	return created.Embedded.Contacts[0].ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d - %s", resp.StatusCode, string(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
