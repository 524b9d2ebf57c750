package nationalrail

import (
	"context"
	"encoding/xml"
	"time"

	"github.com/hooklift/gowsdl/soap"
)

// SOAPHeader carries the OpenLDBWS access token in the envelope header.
type SOAPHeader struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Header"`

	Header interface{} `xml:",omitempty"`
}

type AccessToken struct {
	XMLName xml.Name `xml:"http://thalesgroup.com/RTTI/2010-11-01/ldb/commontypes AccessToken"`

	TokenValue string `xml:"TokenValue"`
}

// The subset of the Live Departure Boards web service binding needed to read
// a station departure board.

type CRSType string

type LocationNameType string

type TOCName string

type TOCCode string

type PlatformType string

type FilterType string

// TimeType is an "HH:MM" time or a status such as "On time" or "Cancelled".
type TimeType string

type ServiceIDType string

type GetBoardRequestParams struct {
	XMLName xml.Name `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/ GetDepartureBoardRequest"`

	// Upper bound on services returned; the server may return fewer.
	NumRows uint16 `xml:"numRows,omitempty"`

	Crs *CRSType `xml:"crs,omitempty"`

	// Restricts the board to services calling at (FilterType "to") or
	// coming from ("from") FilterCrs.
	FilterCrs  *CRSType    `xml:"filterCrs,omitempty"`
	FilterType *FilterType `xml:"filterType,omitempty"`

	// Minutes from now to the start and end of the board.
	TimeOffset int32 `xml:"timeOffset,omitempty"`
	TimeWindow int32 `xml:"timeWindow,omitempty"`
}

type StationBoardResponseType struct {
	XMLName xml.Name `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/ GetDepartureBoardResponse"`

	GetStationBoardResult *StationBoard `xml:"GetStationBoardResult,omitempty"`
}

type NRCCMessage struct {
	Value string
}

type ArrayOfNRCCMessages struct {
	Message []*NRCCMessage `xml:"message,omitempty" json:"message,omitempty"`
}

type StationBoard struct {
	GeneratedAt  time.Time         `xml:"generatedAt,omitempty" json:"generatedAt,omitempty"`
	LocationName *LocationNameType `xml:"locationName,omitempty" json:"locationName,omitempty"`
	Crs          *CRSType          `xml:"crs,omitempty" json:"crs,omitempty"`

	NrccMessages *ArrayOfNRCCMessages `xml:"nrccMessages,omitempty" json:"nrccMessages,omitempty"`

	// When false the board carries no platforms and none should be shown.
	PlatformAvailable bool `xml:"platformAvailable,omitempty" json:"platformAvailable,omitempty"`

	TrainServices *ArrayOfServiceItems `xml:"trainServices,omitempty" json:"trainServices,omitempty"`
}

type ArrayOfServiceItems struct {
	Service []*ServiceItem `xml:"service,omitempty" json:"service,omitempty"`
}

type ServiceItem struct {
	Std          *TimeType     `xml:"std,omitempty" json:"std,omitempty"`
	Etd          *TimeType     `xml:"etd,omitempty" json:"etd,omitempty"`
	Platform     *PlatformType `xml:"platform,omitempty" json:"platform,omitempty"`
	Operator     *TOCName      `xml:"operator,omitempty" json:"operator,omitempty"`
	OperatorCode *TOCCode      `xml:"operatorCode,omitempty" json:"operatorCode,omitempty"`

	IsCancelled  bool   `xml:"isCancelled,omitempty" json:"isCancelled,omitempty"`
	CancelReason string `xml:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	DelayReason  string `xml:"delayReason,omitempty" json:"delayReason,omitempty"`

	ServiceID *ServiceIDType `xml:"serviceID,omitempty" json:"serviceID,omitempty"`

	// A service may have more than one destination when it divides.
	Destination *ArrayOfServiceLocations `xml:"destination,omitempty" json:"destination,omitempty"`
}

type ArrayOfServiceLocations struct {
	Location []*ServiceLocation `xml:"location,omitempty" json:"location,omitempty"`
}

type ServiceLocation struct {
	LocationName *LocationNameType `xml:"locationName,omitempty" json:"locationName,omitempty"`
	Crs          *CRSType          `xml:"crs,omitempty" json:"crs,omitempty"`

	// Disambiguates the route, e.g. "via Gatwick Airport".
	Via string `xml:"via,omitempty" json:"via,omitempty"`
}

type LDBServiceSoap interface {
	GetDepartureBoardContext(ctx context.Context, request *GetBoardRequestParams) (*StationBoardResponseType, error)
}

type lDBServiceSoap struct {
	client *soap.Client
}

// NewLDBServiceSoap returns the departure board operation bound to client.
func NewLDBServiceSoap(client *soap.Client) LDBServiceSoap {
	return &lDBServiceSoap{
		client: client,
	}
}

// NewAuthenticatedClient returns a SOAP client for url that sends accessToken
// with every call.
func NewAuthenticatedClient(url string, accessToken string) *soap.Client {
	client := soap.NewClient(url)
	client.AddHeader(SOAPHeader{
		Header: AccessToken{
			TokenValue: accessToken,
		},
	})

	return client
}

func (service *lDBServiceSoap) GetDepartureBoardContext(ctx context.Context, request *GetBoardRequestParams) (*StationBoardResponseType, error) {
	response := new(StationBoardResponseType)
	err := service.client.CallContext(ctx, "http://thalesgroup.com/RTTI/2012-01-13/ldb/GetDepartureBoard", request, response)
	if err != nil {
		return nil, err
	}

	return response, nil
}
