package jobber

import (
	"context"
	"fmt"
	"strings"

	"s2j/internal/port"
)

const clientCreateMutation = `
mutation ClientCreate($input: ClientCreateInput!) {
  clientCreate(input: $input) {
    client { id name }
    userErrors { message path }
  }
}`

const propertyCreateMutation = `
mutation PropertyCreate($clientId: EncodedId!, $input: PropertyCreateInput!) {
  propertyCreate(clientId: $clientId, input: $input) {
    properties { id address { street city province postalCode } }
    userErrors { message path }
  }
}`

// companyKeywords flag a customer name as a business rather than an
// individual. Matched against the uppercased name.
var companyKeywords = []string{
	" INC", " LLC", " CORP", " LTD", "COMPANY", "GROUP", "SERVICE", "SOLUTION",
}

// clientCreateInput builds the name fields for clientCreate: companies
// get companyName, individuals are split into first/last name.
func clientCreateInput(customerName string) map[string]any {
	name := strings.TrimSpace(customerName)
	upper := strings.ToUpper(name)
	for _, kw := range companyKeywords {
		if strings.Contains(upper, kw) {
			return map[string]any{"companyName": name, "isCompany": true}
		}
	}

	parts := strings.Fields(name)
	input := map[string]any{"isCompany": false}
	switch {
	case len(parts) >= 2:
		input["firstName"] = parts[0]
		input["lastName"] = strings.Join(parts[1:], " ")
	case len(parts) == 1:
		input["lastName"] = parts[0]
	default:
		input["firstName"] = "Client"
		input["lastName"] = "Unknown"
	}
	return input
}

// CreateClientAndProperty creates a client and then one property for it.
// Both steps must succeed for the mapping to be recorded.
func (c *Client) CreateClientAndProperty(ctx context.Context, input port.NewClientInput) (string, string, error) {
	var clientData struct {
		Payload struct {
			Client     *clientNode `json:"client"`
			UserErrors []userError `json:"userErrors"`
		} `json:"clientCreate"`
	}
	variables := map[string]any{"input": clientCreateInput(input.CustomerName)}
	if err := c.post(ctx, "clientCreate", clientCreateMutation, variables, &clientData); err != nil {
		return "", "", err
	}
	if len(clientData.Payload.UserErrors) > 0 {
		return "", "", &ValidationError{Op: "clientCreate", Messages: userErrorMessages(clientData.Payload.UserErrors)}
	}
	if clientData.Payload.Client == nil || clientData.Payload.Client.ID == "" {
		return "", "", fmt.Errorf("jobber.CreateClientAndProperty: clientCreate returned no client id")
	}
	clientID := clientData.Payload.Client.ID

	address := map[string]any{}
	for k, v := range map[string]string{
		"street1":    input.Address.Street1,
		"city":       input.Address.City,
		"province":   input.Address.Province,
		"postalCode": input.Address.PostalCode,
	} {
		if v != "" {
			address[k] = v
		}
	}

	var propData struct {
		Payload struct {
			Properties []propertyNode `json:"properties"`
			UserErrors []userError    `json:"userErrors"`
		} `json:"propertyCreate"`
	}
	propVariables := map[string]any{
		"clientId": clientID,
		"input": map[string]any{
			"properties": []map[string]any{{"address": address}},
		},
	}
	if err := c.post(ctx, "propertyCreate", propertyCreateMutation, propVariables, &propData); err != nil {
		return "", "", err
	}
	if len(propData.Payload.UserErrors) > 0 {
		return "", "", &ValidationError{Op: "propertyCreate", Messages: userErrorMessages(propData.Payload.UserErrors)}
	}
	if len(propData.Payload.Properties) == 0 || propData.Payload.Properties[0].ID == "" {
		return "", "", fmt.Errorf("jobber.CreateClientAndProperty: propertyCreate returned no property id")
	}
	return clientID, propData.Payload.Properties[0].ID, nil
}
