package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"outreach-agent/internal/domain"
)

const upsertProspectExpr = "SET id = if_not_exists(id, :id), createdAt = if_not_exists(createdAt, :now), " +
	"entity = :entity, linkedinUrl = :url, #name = :name, headline = :headline, company = :company, " +
	"industry = :industry, #location = :location, seniorityLevel = :seniority, rawData = :raw, updatedAt = :now"

// UpsertProspect creates or refreshes the prospect stored under linkedinURL.
// The prospect ID is assigned on first write and kept on later upserts.
func (c *Client) UpsertProspect(ctx context.Context, scraped domain.ScrapedProfile, linkedinURL string) (domain.Prospect, error) {
	profile := scraped.Profile
	if linkedinURL == "" {
		return domain.Prospect{}, errors.New("repository: UpsertProspect: linkedin url is required")
	}

	out, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(c.tableName),
		Key:              key(pkProspect+linkedinURL, skProfile),
		UpdateExpression: aws.String(upsertProspectExpr),
		ExpressionAttributeNames: map[string]string{
			"#name":     "name",
			"#location": "location",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id":        sAttr(c.newID()),
			":now":       sAttr(c.timestamp()),
			":entity":    sAttr("prospect"),
			":url":       sAttr(linkedinURL),
			":name":      sAttr(profile.Name),
			":headline":  sAttr(profile.Headline),
			":company":   sAttr(profile.Company),
			":industry":  sAttr(profile.Industry),
			":location":  sAttr(profile.Location),
			":seniority": sAttr(string(profile.Seniority())),
			":raw":       strMapAttr(scraped.RawData),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return domain.Prospect{}, fmt.Errorf("repository: UpsertProspect: %w", err)
	}
	if out == nil || len(out.Attributes) == 0 {
		return domain.Prospect{}, errors.New("repository: UpsertProspect: no attributes returned")
	}

	p, err := itemToProspect(out.Attributes)
	if err != nil {
		return domain.Prospect{}, fmt.Errorf("repository: UpsertProspect decode: %w", err)
	}
	return p, nil
}

// CreateTovConfig stores tov with its defaults applied and returns the new ID.
func (c *Client) CreateTovConfig(ctx context.Context, tov domain.TovConfig) (string, error) {
	id := c.newID()
	tov = tov.WithDefaults()

	item := key(pkTov+id, skConfig)
	item["entity"] = sAttr("tov_config")
	item["id"] = sAttr(id)
	item["formality"] = nAttr(tov.Formality)
	item["warmth"] = nAttr(tov.Warmth)
	item["directness"] = nAttr(tov.Directness)
	item["technicalDepth"] = nAttr(*tov.TechnicalDepth)
	item["urgency"] = nAttr(*tov.Urgency)
	item["createdAt"] = sAttr(c.timestamp())

	if err := c.putNew(ctx, item); err != nil {
		return "", fmt.Errorf("repository: CreateTovConfig: %w", err)
	}
	return id, nil
}

// CreateGeneration stores an engine call record and returns the new ID.
func (c *Client) CreateGeneration(ctx context.Context, rec domain.GenerationRecord) (string, error) {
	id := c.newID()

	item := key(pkGen+id, skRecord)
	item["entity"] = sAttr("ai_generation")
	item["id"] = sAttr(id)
	item["modelUsed"] = sAttr(rec.ModelUsed)
	item["promptTokens"] = intAttrValue(rec.PromptTokens)
	item["completionTokens"] = intAttrValue(rec.CompletionTokens)
	item["totalCost"] = nAttr(rec.TotalCost)
	item["thinkingProcess"] = sAttr(rec.ThinkingProcess)
	item["rawResponse"] = sAttr(rec.RawResponse)
	item["success"] = boolAttr(rec.Success)
	item["createdAt"] = sAttr(c.timestamp())
	if rec.ErrorMessage != "" {
		item["errorMessage"] = sAttr(rec.ErrorMessage)
	}

	if err := c.putNew(ctx, item); err != nil {
		return "", fmt.Errorf("repository: CreateGeneration: %w", err)
	}
	return id, nil
}

// CreateSequence stores a message sequence and returns the new ID.
func (c *Client) CreateSequence(ctx context.Context, seq domain.MessageSequence) (string, error) {
	messages, err := json.Marshal(seq.Messages)
	if err != nil {
		return "", fmt.Errorf("repository: CreateSequence encode messages: %w", err)
	}
	insights, err := json.Marshal(seq.ProspectInsights)
	if err != nil {
		return "", fmt.Errorf("repository: CreateSequence encode insights: %w", err)
	}

	id := c.newID()
	item := key(pkSeq+id, skSequence)
	item["entity"] = sAttr("message_sequence")
	item["id"] = sAttr(id)
	item["prospectId"] = sAttr(seq.ProspectID)
	item["prospectUrl"] = sAttr(seq.ProspectURL)
	item["tovConfigId"] = sAttr(seq.TovConfigID)
	item["aiGenerationId"] = sAttr(seq.AIGenerationID)
	item["companyContext"] = sAttr(seq.CompanyContext)
	item["messages"] = sAttr(string(messages))
	item["prospectInsights"] = sAttr(string(insights))
	item["createdAt"] = sAttr(c.timestamp())

	if err := c.putNew(ctx, item); err != nil {
		return "", fmt.Errorf("repository: CreateSequence: %w", err)
	}
	return id, nil
}

// GetSequence loads a sequence with its prospect, tone config and generation
// record. found is false when no sequence has the given ID. Related records
// that no longer exist are left nil.
func (c *Client) GetSequence(ctx context.Context, id string) (domain.SequenceDetail, bool, error) {
	item, err := c.get(ctx, pkSeq+id, skSequence)
	if err != nil {
		return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence: %w", err)
	}
	if item == nil {
		return domain.SequenceDetail{}, false, nil
	}

	seq, err := itemToSequence(item)
	if err != nil {
		return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence decode: %w", err)
	}
	detail := domain.SequenceDetail{MessageSequence: seq}

	if item, err = c.get(ctx, pkProspect+seq.ProspectURL, skProfile); err != nil {
		return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence prospect: %w", err)
	}
	if item != nil {
		p, err := itemToProspect(item)
		if err != nil {
			return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence decode prospect: %w", err)
		}
		detail.Prospect = &p
	}

	if item, err = c.get(ctx, pkTov+seq.TovConfigID, skConfig); err != nil {
		return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence tov config: %w", err)
	}
	if item != nil {
		tov, err := itemToTovConfig(item)
		if err != nil {
			return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence decode tov config: %w", err)
		}
		detail.TovConfig = &tov
	}

	if item, err = c.get(ctx, pkGen+seq.AIGenerationID, skRecord); err != nil {
		return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence generation: %w", err)
	}
	if item != nil {
		rec, err := itemToGeneration(item)
		if err != nil {
			return domain.SequenceDetail{}, false, fmt.Errorf("repository: GetSequence decode generation: %w", err)
		}
		detail.AIGeneration = &rec
	}

	return detail, true, nil
}

func (c *Client) putNew(ctx context.Context, item map[string]types.AttributeValue) error {
	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	return err
}

// get returns nil without error when the item does not exist.
func (c *Client) get(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.tableName),
		Key:            key(pk, sk),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out == nil || len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

func itemToProspect(item map[string]types.AttributeValue) (domain.Prospect, error) {
	id, err := strAttr(item, "id")
	if err != nil {
		return domain.Prospect{}, err
	}
	url, err := strAttr(item, "linkedinUrl")
	if err != nil {
		return domain.Prospect{}, err
	}
	name, err := strAttr(item, "name")
	if err != nil {
		return domain.Prospect{}, err
	}
	raw, err := strMapAttrValue(item, "rawData")
	if err != nil {
		return domain.Prospect{}, err
	}

	var opt [6]string
	for i, k := range []string{"headline", "company", "industry", "location", "seniorityLevel", "updatedAt"} {
		if opt[i], err = optStrAttr(item, k); err != nil {
			return domain.Prospect{}, err
		}
	}

	return domain.Prospect{
		ID:          id,
		LinkedInURL: url,
		Profile: domain.ProspectProfile{
			Name:           name,
			Headline:       opt[0],
			Company:        opt[1],
			Industry:       opt[2],
			Location:       opt[3],
			SeniorityLevel: domain.ParseSeniority(opt[4]),
		},
		RawData:   raw,
		UpdatedAt: opt[5],
	}, nil
}

func itemToTovConfig(item map[string]types.AttributeValue) (domain.StoredTovConfig, error) {
	id, err := strAttr(item, "id")
	if err != nil {
		return domain.StoredTovConfig{}, err
	}
	var vals [5]float64
	for i, k := range []string{"formality", "warmth", "directness", "technicalDepth", "urgency"} {
		if vals[i], err = numAttr(item, k); err != nil {
			return domain.StoredTovConfig{}, err
		}
	}
	createdAt, err := optStrAttr(item, "createdAt")
	if err != nil {
		return domain.StoredTovConfig{}, err
	}

	return domain.StoredTovConfig{
		ID: id,
		Config: domain.TovConfig{
			Formality:      vals[0],
			Warmth:         vals[1],
			Directness:     vals[2],
			TechnicalDepth: &vals[3],
			Urgency:        &vals[4],
		},
		CreatedAt: createdAt,
	}, nil
}

func itemToGeneration(item map[string]types.AttributeValue) (domain.GenerationRecord, error) {
	var (
		rec domain.GenerationRecord
		err error
	)
	if rec.ID, err = strAttr(item, "id"); err != nil {
		return rec, err
	}
	if rec.ModelUsed, err = optStrAttr(item, "modelUsed"); err != nil {
		return rec, err
	}
	if rec.PromptTokens, err = intAttr(item, "promptTokens"); err != nil {
		return rec, err
	}
	if rec.CompletionTokens, err = intAttr(item, "completionTokens"); err != nil {
		return rec, err
	}
	if rec.TotalCost, err = numAttr(item, "totalCost"); err != nil {
		return rec, err
	}
	if rec.Success, err = boolAttrValue(item, "success"); err != nil {
		return rec, err
	}
	if rec.ThinkingProcess, err = optStrAttr(item, "thinkingProcess"); err != nil {
		return rec, err
	}
	if rec.RawResponse, err = optStrAttr(item, "rawResponse"); err != nil {
		return rec, err
	}
	if rec.ErrorMessage, err = optStrAttr(item, "errorMessage"); err != nil {
		return rec, err
	}
	if rec.CreatedAt, err = optStrAttr(item, "createdAt"); err != nil {
		return rec, err
	}
	return rec, nil
}

func itemToSequence(item map[string]types.AttributeValue) (domain.MessageSequence, error) {
	var (
		seq domain.MessageSequence
		err error
	)
	if seq.ID, err = strAttr(item, "id"); err != nil {
		return seq, err
	}
	if seq.ProspectID, err = strAttr(item, "prospectId"); err != nil {
		return seq, err
	}
	if seq.ProspectURL, err = strAttr(item, "prospectUrl"); err != nil {
		return seq, err
	}
	if seq.TovConfigID, err = strAttr(item, "tovConfigId"); err != nil {
		return seq, err
	}
	if seq.AIGenerationID, err = strAttr(item, "aiGenerationId"); err != nil {
		return seq, err
	}
	if seq.CompanyContext, err = optStrAttr(item, "companyContext"); err != nil {
		return seq, err
	}
	if seq.CreatedAt, err = optStrAttr(item, "createdAt"); err != nil {
		return seq, err
	}

	messages, err := strAttr(item, "messages")
	if err != nil {
		return seq, err
	}
	if err := json.Unmarshal([]byte(messages), &seq.Messages); err != nil {
		return seq, fmt.Errorf("repository: decode messages: %w", err)
	}
	insights, err := strAttr(item, "prospectInsights")
	if err != nil {
		return seq, err
	}
	if err := json.Unmarshal([]byte(insights), &seq.ProspectInsights); err != nil {
		return seq, fmt.Errorf("repository: decode insights: %w", err)
	}
	return seq, nil
}
