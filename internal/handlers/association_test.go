package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/switchyard-io/switchyard/internal/models"
)

func strptr(s string) *string {
	return &s
}

func (suite *HandlerTestSuite) TestAssociateSwitchVlan() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")

	detail := suite.associate(vlan.ID, sw.ID, strptr("Gi0/1"))
	assert.Equal(vlan.ID, detail.VlanID)
	assert.Equal(sw.ID, detail.SwitchID)
	assert.Equal("Mgmt", detail.VlanName)
	assert.Equal("core-sw-1", detail.SwitchHostname)
	assert.Equal("Gi0/1", *detail.Port)

	// linking the same pair twice is a conflict
	{
		_, res, err := suite.ServeRequest(
			http.MethodPost,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
			suite.api.AssociateSwitchVlan, bytes.NewBufferString("{}"),
		)
		assert.NoError(err)
		assert.Equal(http.StatusConflict, res.Code)
	}

	{
		_, res, err := suite.ServeRequest(
			http.MethodPost,
			"/:id/switches/:switchId", fmt.Sprintf("/99999/switches/%d", sw.ID),
			suite.api.AssociateSwitchVlan, bytes.NewBufferString("{}"),
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}

	{
		_, res, err := suite.ServeRequest(
			http.MethodPost,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/99999", vlan.ID),
			suite.api.AssociateSwitchVlan, bytes.NewBufferString("{}"),
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestAssociateWithoutBody() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")

	// an empty body just means no port label
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
		suite.api.AssociateSwitchVlan, bytes.NewBufferString(""),
	)
	assert.NoError(err)
	assert.Equal(http.StatusCreated, res.Code, res.Body.String())

	var detail models.AssociationDetail
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &detail))
	assert.Nil(detail.Port)
}

func (suite *HandlerTestSuite) TestAssociatePortTooLong() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")

	body, _ := json.Marshal(models.AddAssociation{Port: strptr(strings.Repeat("x", 51))})
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
		suite.api.AssociateSwitchVlan, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusBadRequest, res.Code)
}

func (suite *HandlerTestSuite) TestUpdateAssociationPort() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")
	suite.associate(vlan.ID, sw.ID, strptr("Gi0/1"))

	{
		body, _ := json.Marshal(models.UpdateAssociation{Port: strptr("Gi0/2")})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
			suite.api.UpdateAssociationPort, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())

		var actual models.Association
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
		assert.Equal("Gi0/2", *actual.Port)
		// a port change stamps the association anew
		assert.WithinDuration(time.Now(), actual.CreatedAt, time.Minute)
	}

	// clearing the label is allowed
	{
		body, _ := json.Marshal(models.UpdateAssociation{Port: nil})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
			suite.api.UpdateAssociationPort, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())

		var actual models.Association
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
		assert.Nil(actual.Port)
	}

	{
		body, _ := json.Marshal(models.UpdateAssociation{Port: strptr("Gi0/3")})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/99999", vlan.ID),
			suite.api.UpdateAssociationPort, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestDisassociateSwitchVlan() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")
	suite.associate(vlan.ID, sw.ID, nil)

	{
		_, res, err := suite.ServeRequest(
			http.MethodDelete,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
			suite.api.DisassociateSwitchVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())
	}

	{
		_, res, err := suite.ServeRequest(
			http.MethodDelete,
			"/:id/switches/:switchId", fmt.Sprintf("/%d/switches/%d", vlan.ID, sw.ID),
			suite.api.DisassociateSwitchVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestListSwitchesForVlanByHostname() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	c := suite.createSwitch("charlie", "10.0.0.3", "WS-C3850-24T")
	a := suite.createSwitch("alpha", "10.0.0.1", "WS-C3850-24T")
	b := suite.createSwitch("bravo", "10.0.0.2", "WS-C3850-24T")
	suite.associate(vlan.ID, c.ID, strptr("Gi0/3"))
	suite.associate(vlan.ID, a.ID, strptr("Gi0/1"))
	suite.associate(vlan.ID, b.ID, nil)

	_, res, err := suite.ServeRequest(
		http.MethodGet,
		"/:id/switches", fmt.Sprintf("/%d/switches", vlan.ID),
		suite.api.ListSwitchesForVlan, nil,
	)
	assert.NoError(err)
	assert.Equal(http.StatusOK, res.Code, res.Body.String())

	var actual models.VlanSwitches
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(vlan.ID, actual.Vlan.ID)
	assert.Len(actual.Switches, 3)
	assert.Equal("alpha", actual.Switches[0].Hostname)
	assert.Equal("bravo", actual.Switches[1].Hostname)
	assert.Equal("charlie", actual.Switches[2].Hostname)
	assert.Equal("Gi0/1", *actual.Switches[0].Port)
	assert.Nil(actual.Switches[1].Port)
}

func (suite *HandlerTestSuite) TestListVlansForSwitchByTag() {
	assert := suite.Assert()
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")
	high := suite.createVlan("Guest", 30)
	low := suite.createVlan("Mgmt", 10)
	suite.associate(high.ID, sw.ID, nil)
	suite.associate(low.ID, sw.ID, nil)

	_, res, err := suite.ServeRequest(
		http.MethodGet,
		"/:id/vlans", fmt.Sprintf("/%d/vlans", sw.ID),
		suite.api.ListVlansForSwitch, nil,
	)
	assert.NoError(err)
	assert.Equal(http.StatusOK, res.Code, res.Body.String())

	var actual models.SwitchVlans
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(sw.ID, actual.Switch.ID)
	assert.Len(actual.Vlans, 2)
	assert.Equal(10, actual.Vlans[0].Tag)
	assert.Equal(30, actual.Vlans[1].Tag)
}

func (suite *HandlerTestSuite) TestBulkAssociate() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	a := suite.createSwitch("alpha", "10.0.0.1", "WS-C3850-24T")
	b := suite.createSwitch("bravo", "10.0.0.2", "WS-C3850-24T")
	suite.associate(vlan.ID, b.ID, nil)

	body, _ := json.Marshal(models.BulkAssociate{Switches: []models.BulkAssociateItem{
		{SwitchID: a.ID, Port: strptr("Gi0/1")},
		{SwitchID: b.ID},
		{SwitchID: 99999},
	}})
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/:id/switches/bulk", fmt.Sprintf("/%d/switches/bulk", vlan.ID),
		suite.api.BulkAssociate, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusCreated, res.Code, res.Body.String())

	var actual models.BulkAssociated
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(vlan.ID, actual.VlanID)
	assert.Equal(1, actual.Added)
	assert.Equal(3, actual.Total)
	assert.Len(actual.Errors, 2)
	assert.Equal(fmt.Sprintf("Switch 2 (ID: %d): resource already exists", b.ID), actual.Errors[0])
	assert.Equal("Switch 3 (ID: 99999): switch not found", actual.Errors[1])
}

func (suite *HandlerTestSuite) TestBulkAssociateVlanNotFound() {
	assert := suite.Assert()
	sw := suite.createSwitch("alpha", "10.0.0.1", "WS-C3850-24T")

	// the anchor VLAN must exist, the batch tolerance is per switch only
	body, _ := json.Marshal(models.BulkAssociate{Switches: []models.BulkAssociateItem{
		{SwitchID: sw.ID},
	}})
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/:id/switches/bulk", "/99999/switches/bulk",
		suite.api.BulkAssociate, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusNotFound, res.Code)
}

func (suite *HandlerTestSuite) TestBulkDisassociate() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	a := suite.createSwitch("alpha", "10.0.0.1", "WS-C3850-24T")
	b := suite.createSwitch("bravo", "10.0.0.2", "WS-C3850-24T")
	suite.associate(vlan.ID, a.ID, nil)

	body, _ := json.Marshal(models.BulkDisassociate{SwitchIDs: []uint{a.ID, b.ID, 99999}})
	_, res, err := suite.ServeRequest(
		http.MethodDelete,
		"/:id/switches/bulk", fmt.Sprintf("/%d/switches/bulk", vlan.ID),
		suite.api.BulkDisassociate, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusOK, res.Code, res.Body.String())

	var actual models.BulkDisassociated
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(3, actual.Requested)
	assert.Equal(1, actual.Removed)
}
