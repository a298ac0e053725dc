package features

import (
	"math"

	"github.com/kilianp07/evprice/core/dataset"
	"github.com/kilianp07/evprice/core/model"
)

const (
	bev      = "Battery Electric Vehicle (BEV)"
	phev     = "Plug-in Hybrid Electric Vehicle (PHEV)"
	eligible = "Clean Alternative Fuel Vehicle Eligible"
	lowRange = "Not eligible due to low battery range"
)

func referenceRows() []dataset.Row {
	return []dataset.Row{
		{Make: "TESLA", Model: "MODEL 3", ModelYear: 2022, EVType: bev, CAFVEligibility: eligible, ElectricRange: 300,
			County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43", City: "Seattle", ExpectedPrice: 45},
		{Make: "TESLA", Model: "MODEL Y", ModelYear: 2021, EVType: bev, CAFVEligibility: eligible, ElectricRange: 280,
			County: "King", ElectricUtility: "PUGET SOUND ENERGY", LegislativeDistrict: "41", City: "Bellevue", ExpectedPrice: 52},
		{Make: "NISSAN", Model: "LEAF", ModelYear: 2018, EVType: bev, CAFVEligibility: eligible, ElectricRange: 151,
			County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43.0", City: "Seattle", ExpectedPrice: 18},
		{Make: "BMW", Model: "I3", ModelYear: 2019, EVType: bev, CAFVEligibility: eligible, ElectricRange: 153,
			County: "Pierce", ElectricUtility: "TACOMA POWER", LegislativeDistrict: "27", City: "Tacoma", ExpectedPrice: 24},
		{Make: "TOYOTA", Model: "PRIUS PLUG-IN", ModelYear: 2015, EVType: phev, CAFVEligibility: lowRange, ElectricRange: 6,
			County: "Snohomish", ElectricUtility: "SNOHOMISH COUNTY PUD", LegislativeDistrict: "38", City: "Everett", ExpectedPrice: 12},
		{Make: "CHEVROLET", Model: "VOLT", ModelYear: 2017, ElectricRange: 53,
			County: "King", ElectricUtility: "PUGET SOUND ENERGY", LegislativeDistrict: "41", City: "Bellevue", ExpectedPrice: math.NaN()},
	}
}

func referenceDataset() *dataset.Dataset { return dataset.New(referenceRows()) }

func scenarioVehicle() model.Vehicle {
	return model.Vehicle{
		Make: "TESLA", Model: "MODEL 3", ModelYear: 2022,
		EVType: bev, CAFVEligibility: eligible, ElectricRange: 300,
		County: "King", ElectricUtility: "SEATTLE CITY LIGHT", LegislativeDistrict: "43", City: "Seattle",
	}
}
