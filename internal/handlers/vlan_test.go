package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/switchyard-io/switchyard/internal/models"
)

func (suite *HandlerTestSuite) TestCreateGetVlan() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	assert.Equal("Mgmt", vlan.Name)
	assert.Equal(10, vlan.Tag)
	assert.NotZero(vlan.ID)

	{
		_, res, err := suite.ServeRequest(
			http.MethodGet,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.GetVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())

		var actual models.Vlan
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
		assert.Equal(vlan.ID, actual.ID)
	}

	{
		_, res, err := suite.ServeRequest(
			http.MethodGet,
			"/:id", "/99999",
			suite.api.GetVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestCreateVlanTagConflict() {
	assert := suite.Assert()
	existing := suite.createVlan("Mgmt", 10)

	// the tag is the identity, the name may repeat
	body, _ := json.Marshal(models.AddVlan{Name: "Another", Tag: 10})
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/", "/",
		suite.api.CreateVlan, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusConflict, res.Code)

	var conflict models.ConflictsError
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &conflict))
	assert.Equal(existing.ID, conflict.ID)

	suite.createVlan("Mgmt", 20)
}

func (suite *HandlerTestSuite) TestCreateVlanValidation() {
	assert := suite.Assert()
	cases := []models.AddVlan{
		{Tag: 10},
		{Name: "Mgmt", Tag: 0},
		{Name: "Mgmt", Tag: -5},
		{Name: "Mgmt", Tag: 4095},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(tc)
		_, res, err := suite.ServeRequest(
			http.MethodPost,
			"/", "/",
			suite.api.CreateVlan, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusBadRequest, res.Code, res.Body.String())
	}

	// the tag range is inclusive on both ends
	suite.createVlan("Edge Low", 1)
	suite.createVlan("Edge High", 4094)
}

func (suite *HandlerTestSuite) TestListVlansNewestFirst() {
	assert := suite.Assert()
	suite.createVlan("Mgmt", 10)
	suite.createVlan("Voice", 20)
	last := suite.createVlan("Guest", 30)

	_, res, err := suite.ServeRequest(
		http.MethodGet,
		"/", "/",
		suite.api.ListVlans, nil,
	)
	assert.NoError(err)
	assert.Equal(http.StatusOK, res.Code, res.Body.String())

	var actual []models.Vlan
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Len(actual, 3)
	assert.Equal(last.ID, actual[0].ID)
	assert.Equal(10, actual[2].Tag)
}

func (suite *HandlerTestSuite) TestUpdateVlan() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	other := suite.createVlan("Voice", 20)

	{
		body, _ := json.Marshal(models.UpdateVlan{Name: "Management", Tag: 11})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.UpdateVlan, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())

		var actual models.Vlan
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
		assert.Equal("Management", actual.Name)
		assert.Equal(11, actual.Tag)
	}

	{
		body, _ := json.Marshal(models.UpdateVlan{Name: "Management", Tag: 20})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.UpdateVlan, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusConflict, res.Code)

		var conflict models.ConflictsError
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &conflict))
		assert.Equal(other.ID, conflict.ID)
	}

	// keeping your own tag is not a conflict
	{
		body, _ := json.Marshal(models.UpdateVlan{Name: "Management", Tag: 11})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.UpdateVlan, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())
	}

	{
		body, _ := json.Marshal(models.UpdateVlan{Name: "Ghost", Tag: 99})
		_, res, err := suite.ServeRequest(
			http.MethodPut,
			"/:id", "/99999",
			suite.api.UpdateVlan, bytes.NewBuffer(body),
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestDeleteVlanCascades() {
	assert := suite.Assert()
	vlan := suite.createVlan("Mgmt", 10)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")
	suite.associate(vlan.ID, sw.ID, nil)

	{
		_, res, err := suite.ServeRequest(
			http.MethodDelete,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.DeleteVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())
	}

	// the switch survives, its membership does not
	{
		_, res, err := suite.ServeRequest(
			http.MethodGet,
			"/:id/vlans", fmt.Sprintf("/%d/vlans", sw.ID),
			suite.api.ListVlansForSwitch, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusOK, res.Code, res.Body.String())

		var actual models.SwitchVlans
		assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
		assert.Len(actual.Vlans, 0)
	}

	{
		_, res, err := suite.ServeRequest(
			http.MethodDelete,
			"/:id", fmt.Sprintf("/%d", vlan.ID),
			suite.api.DeleteVlan, nil,
		)
		assert.NoError(err)
		assert.Equal(http.StatusNotFound, res.Code)
	}
}

func (suite *HandlerTestSuite) TestBulkCreateVlans() {
	assert := suite.Assert()
	suite.createVlan("Mgmt", 10)

	body, _ := json.Marshal(models.BulkAddVlans{Vlans: []models.AddVlan{
		{Name: "Voice", Tag: 20},
		{Name: "Clash", Tag: 10},
		{Name: "Guest", Tag: 30},
	}})
	_, res, err := suite.ServeRequest(
		http.MethodPost,
		"/", "/",
		suite.api.BulkCreateVlans, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusCreated, res.Code, res.Body.String())

	var actual models.BulkVlansCreated
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(2, actual.Created)
	assert.Equal(3, actual.Total)
	assert.Len(actual.Errors, 1)
	assert.Equal("VLAN 2 (Clash): resource already exists", actual.Errors[0])
}

func (suite *HandlerTestSuite) TestBulkDeleteVlans() {
	assert := suite.Assert()
	a := suite.createVlan("Mgmt", 10)
	suite.createVlan("Voice", 20)
	sw := suite.createSwitch("core-sw-1", "10.0.0.1", "WS-C3850-24T")
	suite.associate(a.ID, sw.ID, nil)

	body, _ := json.Marshal(models.BulkDeleteVlans{VlanIDs: []uint{a.ID, 99999}})
	_, res, err := suite.ServeRequest(
		http.MethodDelete,
		"/", "/",
		suite.api.BulkDeleteVlans, bytes.NewBuffer(body),
	)
	assert.NoError(err)
	assert.Equal(http.StatusOK, res.Code, res.Body.String())

	var actual models.BulkDeleted
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &actual))
	assert.Equal(2, actual.Requested)
	assert.Equal(1, actual.Deleted)

	// associations went with the deleted VLAN
	_, res, err = suite.ServeRequest(
		http.MethodGet,
		"/:id/vlans", fmt.Sprintf("/%d/vlans", sw.ID),
		suite.api.ListVlansForSwitch, nil,
	)
	assert.NoError(err)
	var memberships models.SwitchVlans
	assert.NoError(json.Unmarshal(res.Body.Bytes(), &memberships))
	assert.Len(memberships.Vlans, 0)
}
