package apidian

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tu-usuario/nomina-pro/internal/application/nomina"
	"github.com/tu-usuario/nomina-pro/internal/domain/entity"
	"github.com/tu-usuario/nomina-pro/pkg/config"
	"github.com/tu-usuario/nomina-pro/pkg/logger"
)

// ── Constantes del proveedor ──────────────────────────────────────────────────

const (
	apiPathPrefix = "/api/ubl2.1/"

	endpointPayroll           = "payroll"
	endpointAdjustment        = "payroll-adjust-note"
	endpointStatus            = "payroll/zip/"
	endpointConfigSoftware    = "config/softwarepayroll"
	endpointConfigCertificate = "config/certificate"
	endpointConfigResolution  = "config/resolution"

	// El proveedor puede tardar en firmar y transmitir; el timeout es generoso.
	requestTimeout = 90 * time.Second

	// Un CUNE tiene 96 caracteres hex; un zip key es un UUID de 36.
	// Cualquier identificador más largo que un UUID es un CUNE definitivo.
	zipKeyLength = 36
)

// ── Cliente HTTP ──────────────────────────────────────────────────────────────

// Client implementa nomina.ApidianClient contra el API REST del proveedor.
// Toda la traducción sincrónico/asíncrono vive aquí: el resto de la aplicación
// solo ve SubmissionResult y StatusResult.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente a partir de la configuración del proveedor.
func NewClient(cfg config.ApidianConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

// ── Estructuras de respuesta ──────────────────────────────────────────────────

// sendResponse es la respuesta del POST de envío. El proveedor devuelve `cune`
// cuando la DIAN validó en línea y `zip_key` cuando el lote quedó en cola.
type sendResponse struct {
	CUNE      string `json:"cune"`
	ZipKey    string `json:"zip_key"`
	Message   string `json:"message"`
	QRCodeURL string `json:"qr_code_url"`
	XMLFile   string `json:"xml_file"`
	PDFFile   string `json:"pdf_file"`
}

// statusResponse es la respuesta de la consulta por zip key.
type statusResponse struct {
	Success             bool            `json:"success"`
	Processed           bool            `json:"processed"`
	IsValid             bool            `json:"is_valid"`
	CUNE                string          `json:"cune"`
	Message             string          `json:"message"`
	Errors              json.RawMessage `json:"errors"`
	QRCodeURL           string          `json:"qr_code_url"`
	XMLFile             string          `json:"xml_file"`
	PDFFile             string          `json:"pdf_file"`
	ApplicationResponse string          `json:"application_response"`
}

// validationError es el cuerpo de un 422 del proveedor.
type validationError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// ── Envío de documentos ───────────────────────────────────────────────────────

// SendPayroll envía una nómina individual (tipo 102). En habilitación el set de
// pruebas viaja como sufijo del endpoint.
func (c *Client) SendPayroll(ctx context.Context, payload *nomina.PayrollPayload, testSetID string) (*nomina.SubmissionResult, error) {
	return c.send(ctx, endpointPayroll, payload, testSetID)
}

// SendAdjustment envía una nota de ajuste (tipo 103).
func (c *Client) SendAdjustment(ctx context.Context, payload *nomina.PayrollPayload, testSetID string) (*nomina.SubmissionResult, error) {
	return c.send(ctx, endpointAdjustment, payload, testSetID)
}

func (c *Client) send(ctx context.Context, endpoint string, payload *nomina.PayrollPayload, testSetID string) (*nomina.SubmissionResult, error) {
	if testSetID != "" {
		endpoint = endpoint + "/" + testSetID
	}

	raw, err := c.doRequest(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var resp sendResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("apidian: respuesta de envío inválida: %w", err)
	}

	identifier := resp.CUNE
	if identifier == "" {
		identifier = resp.ZipKey
	}
	if identifier == "" {
		return nil, fmt.Errorf("apidian: el envío no devolvió CUNE ni zip key")
	}

	result := &nomina.SubmissionResult{
		Message:   resp.Message,
		QRLink:    resp.QRCodeURL,
		XMLBase64: resp.XMLFile,
		PDFBase64: resp.PDFFile,
	}
	if len(identifier) > zipKeyLength {
		// Validación sincrónica: el identificador ya es el CUNE definitivo.
		result.Immediate = true
		result.CUNE = identifier
	} else {
		result.ZipKey = identifier
	}
	return result, nil
}

// ── Consulta de estado ────────────────────────────────────────────────────────

// PayrollStatus consulta un lote pendiente por su zip key.
func (c *Client) PayrollStatus(ctx context.Context, zipKey string) (*nomina.StatusResult, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, endpointStatus+zipKey, nil)
	if err != nil {
		return nil, err
	}

	var resp statusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("apidian: respuesta de estado inválida: %w", err)
	}

	result := &nomina.StatusResult{
		Finished: resp.Success && resp.Processed,
		Accepted: resp.IsValid,
		CUNE:     resp.CUNE,
		Message:  resp.Message,
		Errors:   flattenErrors(resp.Errors),
	}

	// El ApplicationResponse UBL trae el detalle oficial del rechazo; si viene,
	// prevalece sobre el mensaje plano del proveedor.
	if resp.ApplicationResponse != "" {
		if msg, errs, err := parseApplicationResponse(resp.ApplicationResponse); err != nil {
			c.log.Warn().Err(err).Msg("apidian: ApplicationResponse ilegible, se conserva el mensaje plano")
		} else {
			if msg != "" {
				result.Message = msg
			}
			if errs != "" {
				result.Errors = errs
			}
		}
	}
	return result, nil
}

// ── Configuración del emisor ──────────────────────────────────────────────────

// ConfigureSoftware registra el software de nómina ante el proveedor.
func (c *Client) ConfigureSoftware(ctx context.Context, softwareID, pin string) error {
	pinNumber, err := strconv.Atoi(pin)
	if err != nil {
		return fmt.Errorf("apidian: el pin del software debe ser numérico: %w", err)
	}
	body := map[string]any{
		"idpayroll":  softwareID,
		"pinpayroll": pinNumber,
	}
	_, err = c.doRequest(ctx, http.MethodPut, endpointConfigSoftware, body)
	return err
}

// ConfigureCertificate carga el certificado de firma digital.
func (c *Client) ConfigureCertificate(ctx context.Context, certificateB64, password string) error {
	body := map[string]any{
		"certificate": certificateB64,
		"password":    password,
	}
	_, err := c.doRequest(ctx, http.MethodPut, endpointConfigCertificate, body)
	return err
}

// ConfigureResolution registra el rango de numeración autorizado.
func (c *Client) ConfigureResolution(ctx context.Context, res *entity.PayrollResolution) error {
	typeDocument, err := strconv.Atoi(res.TypeDocumentCode)
	if err != nil {
		return fmt.Errorf("apidian: tipo de documento inválido %q: %w", res.TypeDocumentCode, err)
	}
	body := map[string]any{
		"type_document_id": typeDocument,
		"prefix":           res.Prefix,
		"from":             res.FromNumber,
		"to":               res.ToNumber,
	}
	_, err = c.doRequest(ctx, http.MethodPut, endpointConfigResolution, body)
	return err
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	fullURL := c.baseURL + apiPathPrefix + endpoint

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apidian: serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("apidian: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Info().Str("method", method).Str("url", fullURL).Msg("apidian: request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("apidian: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("apidian: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20)) // max 8 MB (XML/PDF en base64)
	if err != nil {
		return nil, fmt.Errorf("apidian: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, fmt.Errorf("apidian: %s", formatValidationError(rawBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("apidian: HTTP %d: %s", resp.StatusCode, truncate(string(rawBody), 500))
	}
	return rawBody, nil
}

// formatValidationError aplana el cuerpo de un 422 a un mensaje legible.
func formatValidationError(rawBody []byte) string {
	var ve validationError
	if err := json.Unmarshal(rawBody, &ve); err != nil {
		return "error de validación (422): " + truncate(string(rawBody), 500)
	}
	msg := ve.Message
	if msg == "" {
		msg = "el proveedor rechazó los datos"
	}
	if len(ve.Errors) == 0 {
		return "error de validación (422): " + msg
	}

	fields := make([]string, 0, len(ve.Errors))
	for field := range ve.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": "+strings.Join(ve.Errors[field], ", "))
	}
	return fmt.Sprintf("error de validación (422): %s Detalles: %s", msg, strings.Join(details, "; "))
}

// flattenErrors convierte el campo errors (objeto, lista o string) a texto plano.
func flattenErrors(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var asMap map[string][]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		fields := make([]string, 0, len(asMap))
		for field := range asMap {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, field+": "+strings.Join(asMap[field], ", "))
		}
		return strings.Join(parts, "; ")
	}
	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return strings.Join(asList, "; ")
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	return string(raw)
}

// parseApplicationResponse decodifica el ApplicationResponse UBL (base64) y
// extrae la descripción del estado y la lista de rechazos de la DIAN.
func parseApplicationResponse(b64 string) (message, errors string, err error) {
	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", "", fmt.Errorf("decodificar base64: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(decoded); err != nil {
		return "", "", fmt.Errorf("parsear XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return "", "", fmt.Errorf("documento XML vacío")
	}

	// //cac:DocumentResponse/cac:Response/cbc:Description
	if el := root.FindElement("//DocumentResponse/Response/Description"); el != nil {
		message = strings.TrimSpace(el.Text())
	}

	// Cada //cac:LineResponse trae un código de regla y su descripción.
	var parts []string
	for _, line := range root.FindElements("//LineResponse/Response") {
		code := ""
		if el := line.FindElement("ResponseCode"); el != nil {
			code = strings.TrimSpace(el.Text())
		}
		desc := ""
		if el := line.FindElement("Description"); el != nil {
			desc = strings.TrimSpace(el.Text())
		}
		switch {
		case code != "" && desc != "":
			parts = append(parts, code+": "+desc)
		case desc != "":
			parts = append(parts, desc)
		case code != "":
			parts = append(parts, code)
		}
	}
	return message, strings.Join(parts, "; "), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
