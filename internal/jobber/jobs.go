package jobber

import (
	"context"
	"fmt"
	"strconv"

	"s2j/internal/domain"
	"s2j/internal/port"
)

const listJobsQuery = `
query GetActiveJobs($cursor: String) {
  jobs(first: 50, after: $cursor, filter: { status: active }) {
    edges {
      cursor
      node {
        id
        jobNumber
        title
        jobStatus
        client { id name }
        property { id address { street1 city province postalCode } }
        total
      }
    }
    pageInfo { hasNextPage }
  }
}`

const jobDetailQuery = `
query GetJobDetails($jobId: EncodedId!) {
  job(id: $jobId) {
    id
    client { id name }
    lineItems { nodes { id name quantity unitPrice } }
  }
}`

const jobCreateLineItemsMutation = `
mutation JobCreateLineItems($jobId: EncodedId!, $input: JobCreateLineItemsInput!) {
  jobCreateLineItems(jobId: $jobId, input: $input) {
    createdLineItems { id }
    userErrors { message path }
  }
}`

const jobEditLineItemsMutation = `
mutation JobEditLineItems($jobId: EncodedId!, $input: JobEditLineItemsInput!) {
  jobEditLineItems(jobId: $jobId, input: $input) {
    userErrors { message path }
  }
}`

const jobDeleteLineItemsMutation = `
mutation JobDeleteLineItems($jobId: EncodedId!, $input: JobDeleteLineItemsInput!) {
  jobDeleteLineItems(jobId: $jobId, input: $input) {
    userErrors { message path }
  }
}`

func (c *Client) listJobs(ctx context.Context, cursor string) (*port.TargetPage, error) {
	variables := map[string]any{}
	if cursor != "" {
		variables["cursor"] = cursor
	}
	var data struct {
		Jobs struct {
			Edges []struct {
				Cursor string `json:"cursor"`
				Node   struct {
					ID        string        `json:"id"`
					JobNumber int           `json:"jobNumber"`
					Title     string        `json:"title"`
					JobStatus string        `json:"jobStatus"`
					Client    clientNode    `json:"client"`
					Property  *propertyNode `json:"property"`
					Total     float64       `json:"total"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"jobs"`
	}
	if err := c.post(ctx, "listJobs", listJobsQuery, variables, &data); err != nil {
		return nil, err
	}

	page := &port.TargetPage{HasNextPage: data.Jobs.PageInfo.HasNextPage}
	for _, edge := range data.Jobs.Edges {
		item := port.TargetItem{
			ID:         edge.Node.ID,
			Type:       domain.TargetJob,
			Number:     strconv.Itoa(edge.Node.JobNumber),
			ClientName: edge.Node.Client.Name,
			Total:      edge.Node.Total,
			Status:     edge.Node.JobStatus,
		}
		if edge.Node.Property != nil {
			item.Address = port.TargetAddress{
				Street1:    edge.Node.Property.Address.Street1,
				City:       edge.Node.Property.Address.City,
				Province:   edge.Node.Property.Address.Province,
				PostalCode: edge.Node.Property.Address.PostalCode,
			}
		}
		page.Items = append(page.Items, item)
	}
	if page.HasNextPage && len(data.Jobs.Edges) > 0 {
		page.NextCursor = data.Jobs.Edges[len(data.Jobs.Edges)-1].Cursor
	}
	return page, nil
}

func (c *Client) jobDetail(ctx context.Context, id string) (*port.TargetDetail, error) {
	var data struct {
		Job *struct {
			ID        string              `json:"id"`
			Client    clientNode          `json:"client"`
			LineItems lineItemsConnection `json:"lineItems"`
		} `json:"job"`
	}
	if err := c.post(ctx, "jobDetail", jobDetailQuery, map[string]any{"jobId": id}, &data); err != nil {
		return nil, err
	}
	if data.Job == nil {
		return nil, fmt.Errorf("jobber.jobDetail: job %s: %w", id, domain.ErrNotFound)
	}
	detail := &port.TargetDetail{ID: data.Job.ID, ClientName: data.Job.Client.Name}
	for _, n := range data.Job.LineItems.Nodes {
		detail.LineItems = append(detail.LineItems, port.TargetLineItem{
			ID: n.ID, Name: n.Name, Quantity: n.Quantity, UnitPrice: n.UnitPrice,
		})
	}
	return detail, nil
}

func (c *Client) addJobLineItems(ctx context.Context, id string, items []domain.LineItemPayload) error {
	var data struct {
		Payload struct {
			CreatedLineItems []struct {
				ID string `json:"id"`
			} `json:"createdLineItems"`
			UserErrors []userError `json:"userErrors"`
		} `json:"jobCreateLineItems"`
	}
	variables := map[string]any{
		"jobId": id,
		"input": map[string]any{"lineItems": toLineItemAttrs(items)},
	}
	if err := c.post(ctx, "jobCreateLineItems", jobCreateLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "jobCreateLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}

func (c *Client) editJobLineItems(ctx context.Context, id string, updates []port.QuantityUpdate) error {
	attrs := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		attrs = append(attrs, map[string]any{"lineItemId": u.LineItemID, "quantity": u.Quantity})
	}
	var data struct {
		Payload struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"jobEditLineItems"`
	}
	variables := map[string]any{
		"jobId": id,
		"input": map[string]any{"lineItems": attrs},
	}
	if err := c.post(ctx, "jobEditLineItems", jobEditLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "jobEditLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}

func (c *Client) deleteJobLineItems(ctx context.Context, id string, lineItemIDs []string) error {
	var data struct {
		Payload struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"jobDeleteLineItems"`
	}
	variables := map[string]any{
		"jobId": id,
		"input": map[string]any{"lineItemIds": lineItemIDs},
	}
	if err := c.post(ctx, "jobDeleteLineItems", jobDeleteLineItemsMutation, variables, &data); err != nil {
		return err
	}
	if len(data.Payload.UserErrors) > 0 {
		return &ValidationError{Op: "jobDeleteLineItems", Messages: userErrorMessages(data.Payload.UserErrors)}
	}
	return nil
}
