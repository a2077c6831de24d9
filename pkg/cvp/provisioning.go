package cvp

import (
	"context"
	"net/url"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// appName identifies this tool in staged provisioning actions, matching
// what CloudVision shows in its change log.
const appName = "ansible_cv_container"

// tempAction is one staged change sent to the provisioning API. Container
// and configlet changes share the same envelope; unused fields stay empty.
type tempAction struct {
	Action       string   `json:"action"`
	NodeType     string   `json:"nodeType"`
	NodeID       string   `json:"nodeId"`
	NodeName     string   `json:"nodeName,omitempty"`
	FromID       string   `json:"fromId"`
	FromName     string   `json:"fromName,omitempty"`
	ToID         string   `json:"toId"`
	ToName       string   `json:"toName,omitempty"`
	ToIDType     string   `json:"toIdType,omitempty"`
	Info         string   `json:"info,omitempty"`
	InfoPreview  string   `json:"infoPreview,omitempty"`
	ConfigletIDs []string `json:"configletList,omitempty"`
	IgnoredIDs   []string `json:"ignoreConfigletList,omitempty"`
}

// AddContainer stages and saves the creation of a container under the
// given parent.
func (c *Client) AddContainer(ctx context.Context, name, parentKey, parentName string) (*types.TopologyResponse, error) {
	action := tempAction{
		Action:      "add",
		NodeType:    "container",
		NodeID:      "new_container",
		NodeName:    name,
		ToID:        parentKey,
		ToName:      parentName,
		Info:        appName + ": add container " + name,
		InfoPreview: "add container " + name,
	}

	if err := c.addTempAction(ctx, action); err != nil {
		return nil, err
	}

	return c.saveTopology(ctx)
}

// DeleteContainer stages and saves the removal of a container. The caller
// is responsible for ensuring the container is empty; CloudVision rejects
// the change otherwise.
func (c *Client) DeleteContainer(ctx context.Context, name, key, parentKey, parentName string) (*types.TopologyResponse, error) {
	action := tempAction{
		Action:      "delete",
		NodeType:    "container",
		NodeID:      key,
		NodeName:    name,
		FromID:      parentKey,
		FromName:    parentName,
		Info:        appName + ": delete container " + name,
		InfoPreview: "delete container " + name,
	}

	if err := c.addTempAction(ctx, action); err != nil {
		return nil, err
	}

	return c.saveTopology(ctx)
}

// ApplyConfiglets stages the attachment of a configlet batch to a
// container. With createTask the topology is saved, which makes
// CloudVision generate configuration push tasks for affected devices;
// without it the change is staged and reported accepted.
func (c *Client) ApplyConfiglets(ctx context.Context, container *types.ContainerInfo, configlets []types.ConfigletInfo, createTask bool) (*types.TopologyResponse, error) {
	action := tempAction{
		Action:       "associate",
		NodeType:     "configlet",
		ToID:         container.Key,
		ToName:       container.Name,
		ToIDType:     "container",
		Info:         appName + ": attach configlets to " + container.Name,
		ConfigletIDs: configletKeys(configlets),
	}

	if err := c.addTempAction(ctx, action); err != nil {
		return nil, err
	}

	if !createTask {
		return &types.TopologyResponse{
			Data: types.TopologyData{Status: "success"},
		}, nil
	}

	return c.saveTopology(ctx)
}

// RemoveConfiglets stages the detachment of a configlet batch from a
// container. Mirrors ApplyConfiglets with the batch listed for removal.
func (c *Client) RemoveConfiglets(ctx context.Context, container *types.ContainerInfo, configlets []types.ConfigletInfo, createTask bool) (*types.TopologyResponse, error) {
	action := tempAction{
		Action:     "associate",
		NodeType:   "configlet",
		ToID:       container.Key,
		ToName:     container.Name,
		ToIDType:   "container",
		Info:       appName + ": detach configlets from " + container.Name,
		IgnoredIDs: configletKeys(configlets),
	}

	if err := c.addTempAction(ctx, action); err != nil {
		return nil, err
	}

	if !createTask {
		return &types.TopologyResponse{
			Data: types.TopologyData{Status: "success"},
		}, nil
	}

	return c.saveTopology(ctx)
}

// addTempAction stages a single change on the provisioning session.
func (c *Client) addTempAction(ctx context.Context, action tempAction) error {
	query := url.Values{
		"format":     {"topology"},
		"queryParam": {""},
		"nodeId":     {"root"},
	}

	payload := map[string][]tempAction{"data": {action}}

	return c.post(ctx, "/cvpservice/provisioning/addTempAction.do", query, payload, nil)
}

// saveTopology commits every staged change of the session and returns the
// resulting status and task identifiers.
func (c *Client) saveTopology(ctx context.Context) (*types.TopologyResponse, error) {
	var response types.TopologyResponse

	err := c.post(ctx, "/cvpservice/provisioning/v2/saveTopology.do", nil, []any{}, &response)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// configletKeys projects a configlet batch onto its CloudVision keys.
func configletKeys(configlets []types.ConfigletInfo) []string {
	keys := make([]string, 0, len(configlets))
	for _, configlet := range configlets {
		keys = append(keys, configlet.Key)
	}

	return keys
}
